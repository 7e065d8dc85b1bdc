package gracefuldrain

import (
	"context"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	corev1 "k8s.io/api/core/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"sigs.k8s.io/pod-graceful-drain/pkg/decision"
	"sigs.k8s.io/pod-graceful-drain/pkg/delay"
	"sigs.k8s.io/pod-graceful-drain/pkg/lbreachability"
	"sigs.k8s.io/pod-graceful-drain/pkg/nodedrain"
	"sigs.k8s.io/pod-graceful-drain/pkg/podmutator"
	"sigs.k8s.io/pod-graceful-drain/pkg/podstate"
)

const (
	// admissionOverhead is the small fixed budget admissionDelayTimeout
	// reserves so the response can marshal before the API server's own
	// webhook timeout fires.
	admissionOverhead = 2 * time.Second

	// defaultAdmissionFallback is used when the admission request carries no
	// deadline; it must not exceed the webhook's configured 30s timeout.
	defaultAdmissionFallback = 30 * time.Second

	// shutdownCleanupPeriod is the extra time Shutdown gives in-flight tasks
	// to observe interruption before their contexts are force-cancelled.
	shutdownCleanupPeriod = 10 * time.Second

	denyReason        = "pod-graceful-drain took over the pod's deletion. It will be eventually removed"
	reentryDenyReason = denyReason + " (reentry)"
)

// NewExecutor constructs the orchestrator that wires the decision engine to
// the pod mutator and delayer, consuming the oracles the decision engine
// needs to classify a pod.
func NewExecutor(config Config, k8sClient client.Client, logger logr.Logger) *Executor {
	var lbOracle lbreachability.Oracle
	if config.ExperimentalGeneralIngress {
		lbOracle = lbreachability.NewIngressOracle(k8sClient, logger)
	} else {
		lbOracle = lbreachability.New(k8sClient, logger)
	}

	return &Executor{
		config:     config,
		k8sClient:  k8sClient,
		logger:     logger,
		delayer:    delay.New(logger),
		mutator:    podmutator.New(k8sClient, logger),
		lbOracle:   lbOracle,
		nodeOracle: nodedrain.New(k8sClient, logger),
	}
}

// Executor asks the decision engine for a Plan and carries it out against
// the pod mutator and delayer, shaping what the webhook handlers respond
// with. It replaces the teacher's PodGracefulDrain, which inlined
// classification, isolation and scheduling into a single method; here
// classification is split out into pkg/decision so it is independently
// unit-testable.
type Executor struct {
	config    Config
	k8sClient client.Client
	logger    logr.Logger

	delayer    *delay.Delayer
	mutator    podmutator.Mutator
	lbOracle   lbreachability.Oracle
	nodeOracle nodedrain.Oracle
}

// InterceptDeletion classifies and, if needed, isolates/schedules a pod
// targeted by a DELETE admission request. allow reports whether the
// admission should be allowed; reason is the user-visible denial message
// when allow is false.
func (e *Executor) InterceptDeletion(ctx context.Context, pod *corev1.Pod, deadline *time.Time) (allow bool, reason string, err error) {
	plan, err := e.classify(ctx, pod, deadline)
	if err != nil {
		return false, "", err
	}

	logger := e.podLogger(pod)

	switch plan.Kind {
	case decision.PlanPass:
		return true, "", nil

	case decision.PlanIsolate:
		patched, err := e.mutator.Isolate(ctx, pod, plan.DeleteAt)
		if err != nil {
			return false, "", err
		}
		if !patched {
			// the pod was already gone by the time we tried to isolate it.
			return true, "", nil
		}
		return e.dispatchEntryPostAction(ctx, plan, pod)

	case decision.PlanReentryAsyncDeny:
		logger.V(1).Info("denying reentrant deletion")
		return false, reentryDenyReason, nil

	case decision.PlanReentrySleepThenAllow:
		task := e.delayer.NewTask(plan.SleepDuration, nil)
		_ = task.RunWait(ctx)
		return true, "", nil

	default:
		return true, "", nil
	}
}

func (e *Executor) dispatchEntryPostAction(ctx context.Context, plan decision.Plan, pod *corev1.Pod) (allow bool, reason string, err error) {
	switch plan.PostAction.Kind {
	case decision.PostActionAsyncDeleteThenDeny:
		e.scheduleAsyncDelete(pod, plan.PostAction.Duration)
		return false, denyReason, nil

	case decision.PostActionSleepThenAllow:
		task := e.delayer.NewTask(plan.PostAction.Duration, nil)
		_ = task.RunWait(ctx)
		return true, "", nil

	default:
		return true, "", nil
	}
}

// InterceptEviction classifies a pod targeted by a CREATE pods/eviction
// admission request the same way InterceptDeletion does. isolate reports
// whether the caller should patch the eviction request to
// deleteOptions.dryRun.
//
// A pod that is already isolated (reentry) is treated as benign and passed
// through unmodified: the original schedule, or the startup recovery scan,
// owns the eventual delete.
func (e *Executor) InterceptEviction(ctx context.Context, pod *corev1.Pod, deadline *time.Time) (isolate bool, err error) {
	plan, err := e.classify(ctx, pod, deadline)
	if err != nil {
		return false, err
	}
	if plan.Kind != decision.PlanIsolate {
		return false, nil
	}

	patched, err := e.mutator.Isolate(ctx, pod, plan.DeleteAt)
	if err != nil {
		return false, err
	}
	if !patched {
		return false, nil
	}

	if plan.PostAction.Kind == decision.PostActionAsyncDeleteThenDeny {
		e.scheduleAsyncDelete(pod, plan.PostAction.Duration)
	}
	return true, nil
}

func (e *Executor) scheduleAsyncDelete(pod *corev1.Pod, after time.Duration) {
	podCopy := pod.DeepCopy()
	logger := e.podLogger(pod)
	task := e.delayer.NewTask(after, func(ctx context.Context, interrupted bool) error {
		if interrupted {
			logger.V(1).Info("delayed delete interrupted by shutdown; proceeding immediately")
		}
		return e.mutator.DisableWaitAndDelete(ctx, podCopy)
	})
	task.RunAsync()
	logger.V(1).Info("scheduled pod deletion", "deleteAt", time.Now().Add(after))
}

func (e *Executor) classify(ctx context.Context, pod *corev1.Pod, deadline *time.Time) (decision.Plan, error) {
	cfg := decision.Config{
		DeleteAfter:     e.config.DeleteAfter,
		NoDenyAdmission: e.config.NoDenyAdmission,
		Overhead:        admissionOverhead,
		Fallback:        defaultAdmissionFallback,
	}
	return decision.Classify(ctx, pod, cfg, e.lbOracle, e.nodeOracle, time.Now(), deadline)
}

// RecoverPending lists every pod bearing the wait sentinel label and
// reschedules its delayed deletion. It must run before the webhook starts
// accepting requests so a restart doesn't lose track of pods already
// isolated by a previous process.
func (e *Executor) RecoverPending(ctx context.Context) error {
	runID := uuid.NewString()
	logger := e.logger.WithValues("recoveryRun", runID)

	podList := &corev1.PodList{}
	if err := e.k8sClient.List(ctx, podList, client.HasLabels{podstate.WaitLabelKey}); err != nil {
		return err
	}

	now := time.Now()
	for i := range podList.Items {
		pod := &podList.Items[i]
		remaining := e.config.DeleteAfter

		info, err := podstate.GetDelayInfo(pod)
		switch {
		case err != nil:
			e.podLogger(pod).Info("pod has malformed drain state; falling back to configured delay", "error", err.Error(), "recoveryRun", runID)
		case info.Waiting:
			remaining = info.Remaining(now)
		}

		e.scheduleAsyncDelete(pod, remaining)
	}
	logger.Info("recovered pending drains", "count", len(podList.Items))
	return nil
}

// Shutdown drains in-flight delayed tasks for up to the longer of
// DeleteAfter and the admission fallback, interrupting stragglers and giving them shutdownCleanupPeriod
// more before their contexts are force-cancelled.
func (e *Executor) Shutdown() {
	drain := e.config.DeleteAfter
	if defaultAdmissionFallback > drain {
		drain = defaultAdmissionFallback
	}
	e.delayer.Stop(drain, shutdownCleanupPeriod)
}

func (e *Executor) podLogger(pod *corev1.Pod) logr.Logger {
	return e.logger.WithValues("pod", client.ObjectKeyFromObject(pod))
}
