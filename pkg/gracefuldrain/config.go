package gracefuldrain

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

const (
	flagDeleteAfter                = "delete-after"
	flagNoDenyAdmission            = "no-deny-admission"
	flagIgnoreError                = "ignore-error"
	flagExperimentalGeneralIngress = "experimental-general-ingress"

	defaultDeleteAfter = 90 * time.Second
)

// Config holds the CLI-configurable behavior of the drain engine.
type Config struct {
	// DeleteAfter is how long an isolated pod is kept around before the
	// async delete fires.
	DeleteAfter time.Duration

	// NoDenyAdmission switches entry and reentry to sleep-then-allow instead
	// of deny, for clusters where admission denial on DELETE is undesirable
	// (e.g. it would break an external drain loop that doesn't retry).
	NoDenyAdmission bool

	// IgnoreError controls the webhook error policy: when true, an oracle or
	// decision-engine error is swallowed and the request admitted with a
	// warning; when false, it is surfaced as a Deny.
	IgnoreError bool

	// ExperimentalGeneralIngress switches the LB reachability oracle from
	// TargetGroupBinding-based discovery to Ingress-backend resolution.
	ExperimentalGeneralIngress bool
}

// BindFlags binds Config's fields to a flag set, following the BindFlags
// convention used throughout this module.
func (cfg *Config) BindFlags(fs *pflag.FlagSet) {
	fs.DurationVar(&cfg.DeleteAfter, flagDeleteAfter, defaultDeleteAfter,
		"how long an isolated pod is kept alive before it is actually deleted")
	fs.BoolVar(&cfg.NoDenyAdmission, flagNoDenyAdmission, false,
		"never deny admission; sleep through the delay and allow instead")
	fs.BoolVar(&cfg.IgnoreError, flagIgnoreError, true,
		"admit the request instead of denying it when the drain engine errors")
	fs.BoolVar(&cfg.ExperimentalGeneralIngress, flagExperimentalGeneralIngress, false,
		"discover load balancer reachability via Ingress backends instead of TargetGroupBinding")
}

// Validate rejects configuration that the engine cannot safely run with.
func (cfg *Config) Validate() error {
	if cfg.DeleteAfter < 0 {
		return errors.Errorf("%s must not be negative", flagDeleteAfter)
	}
	return nil
}
