package pod

import (
	"context"

	"github.com/go-logr/logr"
	corev1 "k8s.io/api/core/v1"
	policyv1 "k8s.io/api/policy/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/webhook/admission"

	"sigs.k8s.io/pod-graceful-drain/pkg/gracefuldrain"
	"sigs.k8s.io/pod-graceful-drain/pkg/k8s"
	pgdwebhook "sigs.k8s.io/pod-graceful-drain/pkg/webhook"
)

// apiPathMutatePodEviction is the MutatingWebhookConfiguration path this
// mutator is registered under.
const apiPathMutatePodEviction = "/mutate-v1-pod-eviction"

// +kubebuilder:webhook:path=/mutate-v1-pod-eviction,mutating=true,failurePolicy=ignore,groups="",resources=pods/eviction,verbs=create,versions=v1,name=mpodeviction.pod-graceful-drain.k8s.io,sideEffects=None,admissionReviewVersions=v1

// NewPodEvictionMutator constructs the MutatingWebhook handler for the
// pods/eviction subresource.
func NewPodEvictionMutator(executor *gracefuldrain.Executor, k8sClient client.Client, ignoreError bool, logger logr.Logger) *PodEvictionMutator {
	return &PodEvictionMutator{
		executor:    executor,
		k8sClient:   k8sClient,
		ignoreError: ignoreError,
		logger:      logger,
	}
}

// PodEvictionMutator implements pkg/webhook.Mutator for the
// pods/eviction CREATE admission path. When InterceptEviction decides the
// pod should be isolated, it marks the eviction request dry-run so the
// evicting controller (Deployment rollout, kubectl drain, the cluster
// autoscaler) believes the pod is gone while the real delete is delayed.
type PodEvictionMutator struct {
	executor    *gracefuldrain.Executor
	k8sClient   client.Client
	ignoreError bool
	logger      logr.Logger
}

func (m *PodEvictionMutator) Prototype(req admission.Request) (runtime.Object, error) {
	return &policyv1.Eviction{}, nil
}

func (m *PodEvictionMutator) MutateCreate(ctx context.Context, obj runtime.Object) (runtime.Object, error) {
	eviction, ok := obj.(*policyv1.Eviction)
	if !ok {
		return obj, nil
	}

	pod := &corev1.Pod{}
	podKey := k8s.NamespacedName(eviction)
	if err := m.k8sClient.Get(ctx, podKey, pod); err != nil {
		if apierrors.IsNotFound(err) {
			return eviction, nil
		}
		m.logger.Error(err, "unable to fetch pod for eviction", "pod", podKey)
		if m.ignoreError {
			return eviction, nil
		}
		return nil, err
	}

	isolate, err := m.executor.InterceptEviction(ctx, pod, deadlineFromContext(ctx))
	if err != nil {
		m.logger.Error(err, "unable to classify pod eviction", "pod", podKey)
		if m.ignoreError {
			return eviction, nil
		}
		return nil, err
	}
	if !isolate {
		return eviction, nil
	}

	if eviction.DeleteOptions == nil {
		eviction.DeleteOptions = &metav1.DeleteOptions{}
	}
	eviction.DeleteOptions.DryRun = []string{metav1.DryRunAll}
	return eviction, nil
}

func (m *PodEvictionMutator) MutateUpdate(ctx context.Context, obj runtime.Object, oldObj runtime.Object) (runtime.Object, error) {
	return obj, nil
}

// SetupWebhookWithManager registers this mutator's handler on the
// manager's webhook server.
func (m *PodEvictionMutator) SetupWebhookWithManager(mgr ctrl.Manager) error {
	mgr.GetWebhookServer().Register(apiPathMutatePodEviction, &admission.Webhook{
		Handler: pgdwebhook.MutatingHandlerFor(m, mgr.GetScheme()),
	})
	return nil
}
