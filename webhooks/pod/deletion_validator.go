package pod

import (
	"context"
	"time"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/runtime"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/webhook/admission"

	"sigs.k8s.io/pod-graceful-drain/pkg/gracefuldrain"
	pgdwebhook "sigs.k8s.io/pod-graceful-drain/pkg/webhook"
)

// apiPathValidatePodDeletion is the ValidatingWebhookConfiguration path this
// validator is registered under.
const apiPathValidatePodDeletion = "/validate-v1-pod-deletion"

// +kubebuilder:webhook:path=/validate-v1-pod-deletion,mutating=false,failurePolicy=ignore,groups="",resources=pods,verbs=delete,versions=v1,name=vpoddeletion.pod-graceful-drain.k8s.io,sideEffects=None,admissionReviewVersions=v1

// NewPodDeletionValidator constructs the ValidatingWebhook handler for pod
// deletion requests.
func NewPodDeletionValidator(executor *gracefuldrain.Executor, ignoreError bool, logger logr.Logger) *PodDeletionValidator {
	return &PodDeletionValidator{
		executor:    executor,
		ignoreError: ignoreError,
		logger:      logger,
	}
}

// PodDeletionValidator implements pkg/webhook.Validator for the pod DELETE
// admission path. It is the entry point of InterceptDeletion: a Deny here
// is how the isolated pod is kept alive until the delayed async delete
// fires.
type PodDeletionValidator struct {
	executor    *gracefuldrain.Executor
	ignoreError bool
	logger      logr.Logger
}

func (v *PodDeletionValidator) Prototype(req admission.Request) (runtime.Object, error) {
	return &corev1.Pod{}, nil
}

func (v *PodDeletionValidator) ValidateCreate(ctx context.Context, obj runtime.Object) error {
	return nil
}

func (v *PodDeletionValidator) ValidateUpdate(ctx context.Context, obj runtime.Object, oldObj runtime.Object) error {
	return nil
}

func (v *PodDeletionValidator) ValidateDelete(ctx context.Context, obj runtime.Object) error {
	pod, ok := obj.(*corev1.Pod)
	if !ok {
		return nil
	}

	if req := pgdwebhook.ContextGetAdmissionRequest(ctx); req != nil && req.DryRun != nil && *req.DryRun {
		return nil
	}

	allow, reason, err := v.executor.InterceptDeletion(ctx, pod, deadlineFromContext(ctx))
	if err != nil {
		v.logger.Error(err, "unable to classify pod deletion", "pod", pod.Namespace+"/"+pod.Name)
		if v.ignoreError {
			return nil
		}
		return errors.Wrap(err, "pod-graceful-drain: unable to classify pod deletion")
	}
	if !allow {
		return errors.New(reason)
	}
	return nil
}

// SetupWebhookWithManager registers this validator's handler on the
// manager's webhook server.
func (v *PodDeletionValidator) SetupWebhookWithManager(mgr ctrl.Manager) error {
	mgr.GetWebhookServer().Register(apiPathValidatePodDeletion, &admission.Webhook{
		Handler: pgdwebhook.ValidatingHandlerFor(v, mgr.GetScheme()),
	})
	return nil
}

// deadlineFromContext surfaces ctx's deadline, if any, as the budget the
// decision engine may spend holding the admission request open.
func deadlineFromContext(ctx context.Context) *time.Time {
	deadline, ok := ctx.Deadline()
	if !ok {
		return nil
	}
	return &deadline
}
