// Package decision implements the top-level state machine that classifies
// an intercepted admission request into a Plan. It is the spec's main
// addition over the teacher's flatter InterceptPodDeletion: the teacher
// inlines classification, isolation and scheduling into one method, while
// here classification is a pure function over pod state and two oracles, so
// it is unit-testable without a live cluster or client-mocking.
package decision

import (
	"context"
	"time"

	corev1 "k8s.io/api/core/v1"

	"sigs.k8s.io/pod-graceful-drain/pkg/lbreachability"
	"sigs.k8s.io/pod-graceful-drain/pkg/nodedrain"
	"sigs.k8s.io/pod-graceful-drain/pkg/podstate"
)

// PlanKind discriminates the tagged union below.
type PlanKind string

const (
	PlanPass                  PlanKind = "Pass"
	PlanIsolate               PlanKind = "Isolate"
	PlanReentryAsyncDeny      PlanKind = "ReentryAsyncDeny"
	PlanReentrySleepThenAllow PlanKind = "ReentrySleepThenAllow"
)

// PostActionKind discriminates what the executor should do after isolating
// a pod on first entry.
type PostActionKind string

const (
	PostActionNone                PostActionKind = "NoAction"
	PostActionAsyncDeleteThenDeny PostActionKind = "AsyncDeleteThenDeny"
	PostActionSleepThenAllow      PostActionKind = "SleepThenAllow"
)

// PostAction is the action the executor dispatches after a first-entry
// isolation.
type PostAction struct {
	Kind     PostActionKind
	Duration time.Duration
}

// Plan is the result the Decision Engine hands to the Plan Executor.
type Plan struct {
	Kind PlanKind

	// Populated when Kind == PlanIsolate.
	DeleteAt   time.Time
	PostAction PostAction

	// Populated when Kind == PlanReentrySleepThenAllow.
	SleepDuration time.Duration
}

// Config parameterizes classification. Overhead and Fallback implement
// admissionDelayTimeout (see below); Fallback must not exceed the webhook's
// configured timeout.
type Config struct {
	DeleteAfter     time.Duration
	NoDenyAdmission bool
	Overhead        time.Duration
	Fallback        time.Duration
}

// Classify inspects a live pod snapshot and produces a Plan. lbOracle and
// nodeOracle are threaded in as interfaces so this stays unit-testable
// without a live cluster.
func Classify(
	ctx context.Context,
	pod *corev1.Pod,
	cfg Config,
	lbOracle lbreachability.Oracle,
	nodeOracle nodedrain.Oracle,
	now time.Time,
	deadline *time.Time,
) (Plan, error) {
	if !podstate.IsReady(pod) {
		return Plan{Kind: PlanPass}, nil
	}

	info, err := podstate.GetDelayInfo(pod)
	if err != nil {
		return Plan{}, err
	}

	if info.Isolated {
		return classifyReentry(ctx, pod, cfg, nodeOracle, info, now, deadline)
	}

	attached, err := lbOracle.IsAttached(ctx, pod)
	if err != nil {
		return Plan{}, err
	}
	if !attached {
		return Plan{Kind: PlanPass}, nil
	}

	return classifyEntry(ctx, pod, cfg, nodeOracle, now, deadline)
}

func classifyEntry(ctx context.Context, pod *corev1.Pod, cfg Config, nodeOracle nodedrain.Oracle, now time.Time, deadline *time.Time) (Plan, error) {
	canDeny, err := canDenyAdmission(ctx, pod, cfg, nodeOracle)
	if err != nil {
		return Plan{}, err
	}

	if canDeny {
		return Plan{
			Kind:       PlanIsolate,
			DeleteAt:   now.Add(cfg.DeleteAfter),
			PostAction: PostAction{Kind: PostActionAsyncDeleteThenDeny, Duration: cfg.DeleteAfter},
		}, nil
	}

	budget := admissionDelayTimeout(deadline, now, cfg.Overhead, cfg.Fallback)
	return Plan{
		Kind:       PlanIsolate,
		DeleteAt:   now.Add(budget),
		PostAction: PostAction{Kind: PostActionSleepThenAllow, Duration: budget},
	}, nil
}

func classifyReentry(ctx context.Context, pod *corev1.Pod, cfg Config, nodeOracle nodedrain.Oracle, info podstate.PodDeletionDelayInfo, now time.Time, deadline *time.Time) (Plan, error) {
	if !info.Waiting {
		// the sentinel label is present but empty: deletion is already
		// underway, so admit this attempt so it can go through.
		return Plan{Kind: PlanPass}, nil
	}

	remaining := info.Remaining(now)
	if remaining == 0 {
		return Plan{Kind: PlanPass}, nil
	}

	canDeny, err := canDenyAdmission(ctx, pod, cfg, nodeOracle)
	if err != nil {
		return Plan{}, err
	}

	if canDeny {
		return Plan{Kind: PlanReentryAsyncDeny}, nil
	}

	budget := admissionDelayTimeout(deadline, now, cfg.Overhead, cfg.Fallback)
	if remaining < budget {
		budget = remaining
	}
	return Plan{Kind: PlanReentrySleepThenAllow, SleepDuration: budget}, nil
}

func canDenyAdmission(ctx context.Context, pod *corev1.Pod, cfg Config, nodeOracle nodedrain.Oracle) (bool, error) {
	if cfg.NoDenyAdmission {
		return false, nil
	}
	draining, err := nodeOracle.IsOnDrainingNode(ctx, pod)
	if err != nil {
		return false, err
	}
	return !draining, nil
}

// admissionDelayTimeout bounds how long the admission handler may hold the
// request open: (deadline - now) - overhead, clamped to zero, or fallback
// when no deadline is known. overhead is a small fixed budget to let the
// response marshal before the API server's own timeout fires.
func admissionDelayTimeout(deadline *time.Time, now time.Time, overhead, fallback time.Duration) time.Duration {
	if deadline == nil {
		return fallback
	}
	budget := deadline.Sub(now) - overhead
	if budget < 0 {
		return 0
	}
	return budget
}
