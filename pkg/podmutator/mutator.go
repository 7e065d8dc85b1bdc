// Package podmutator implements the three pod mutations the drain protocol
// needs -- isolate, disableWait, delete -- as an optimistic-concurrency
// patch loop against the Kubernetes API. It generalizes pod-graceful-drain's
// patchPod closure into three named operations plus a composite.
package podmutator

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/util/wait"
	"k8s.io/client-go/util/retry"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"sigs.k8s.io/pod-graceful-drain/pkg/k8s"
	"sigs.k8s.io/pod-graceful-drain/pkg/podstate"
)

// Mutator encapsulates the three pod mutations the drain protocol performs
// against the API server.
type Mutator interface {
	// Isolate replaces the pod's labels with the sentinel wait label,
	// snapshotting the original labels and clearing owner-reference
	// controllers. Returns (patched, err): patched is false if the pod was
	// already isolated or is gone.
	Isolate(ctx context.Context, pod *corev1.Pod, deleteAt time.Time) (bool, error)

	// DisableWait sets the wait label to empty, signalling that deletion is
	// underway. Returns (patched, err) with the same gone-is-not-patched
	// convention as Isolate.
	DisableWait(ctx context.Context, pod *corev1.Pod) (bool, error)

	// Delete unconditionally deletes the pod with a uid precondition.
	// NotFound and Conflict are treated as success.
	Delete(ctx context.Context, pod *corev1.Pod) error

	// DisableWaitAndDelete chains DisableWait and Delete.
	DisableWaitAndDelete(ctx context.Context, pod *corev1.Pod) error
}

type defaultMutator struct {
	k8sClient client.Client
	logger    logr.Logger
}

// New constructs the default Mutator, backed by a live Kubernetes client.
func New(k8sClient client.Client, logger logr.Logger) Mutator {
	return &defaultMutator{
		k8sClient: k8sClient,
		logger:    logger,
	}
}

func (m *defaultMutator) Isolate(ctx context.Context, pod *corev1.Pod, deleteAt time.Time) (bool, error) {
	condition := func(pod *corev1.Pod) bool {
		info, err := podstate.GetDelayInfo(pod)
		if err != nil {
			return true // malformed is as good as isolated; do not rewrite.
		}
		return info.Isolated
	}
	mutate := func(pod *corev1.Pod) error {
		oldLabels, err := json.Marshal(pod.Labels)
		if err != nil {
			return errors.Wrap(err, "unable to marshal original labels")
		}

		pod.Labels = map[string]string{
			podstate.WaitLabelKey: "true",
		}
		if pod.Annotations == nil {
			pod.Annotations = map[string]string{}
		}
		pod.Annotations[podstate.DeleteAtAnnotationKey] = deleteAt.UTC().Format(time.RFC3339)
		pod.Annotations[podstate.OriginalLabelsAnnotationKey] = string(oldLabels)

		for i := range pod.OwnerReferences {
			pod.OwnerReferences[i].Controller = nil
		}
		return nil
	}
	return m.patchPod(ctx, pod, condition, mutate)
}

func (m *defaultMutator) DisableWait(ctx context.Context, pod *corev1.Pod) (bool, error) {
	condition := func(pod *corev1.Pod) bool {
		return len(pod.Labels[podstate.WaitLabelKey]) == 0
	}
	mutate := func(pod *corev1.Pod) error {
		if pod.Labels == nil {
			pod.Labels = map[string]string{}
		}
		// set to empty rather than deleting it, so leftover pods remain
		// discoverable.
		pod.Labels[podstate.WaitLabelKey] = ""
		return nil
	}
	return m.patchPod(ctx, pod, condition, mutate)
}

func (m *defaultMutator) Delete(ctx context.Context, pod *corev1.Pod) error {
	return wait.ExponentialBackoff(retry.DefaultBackoff, func() (bool, error) {
		if err := m.k8sClient.Delete(ctx, pod, client.Preconditions{UID: &pod.UID}); err != nil {
			if apierrors.IsNotFound(err) || apierrors.IsConflict(err) {
				return true, nil
			}
			return false, nil
		}
		return true, nil
	})
}

func (m *defaultMutator) DisableWaitAndDelete(ctx context.Context, pod *corev1.Pod) error {
	podUID := pod.UID
	if _, err := m.DisableWait(ctx, pod); err != nil {
		return errors.Wrap(err, "unable to disable wait label")
	}
	if pod.UID != podUID {
		// the name now belongs to a different pod; ours is already gone.
		return nil
	}
	// DisableWait does not patch when the label is already empty or the pod
	// is gone; Delete treats NotFound as success, so it runs in every case
	// and a pod left with an empty wait label is still removed.
	if err := m.Delete(ctx, pod); err != nil {
		return errors.Wrap(err, "unable to delete pod")
	}
	return nil
}

// patchPod implements the common optimistic-concurrency loop shared by
// Isolate and DisableWait: evaluate condition, mutate pod in place (keeping
// a deep copy as the patch base), patch with a resourceVersion precondition, retry on Conflict, and poll until the
// condition is observably true (to cover read-after-write cache lag).
func (m *defaultMutator) patchPod(ctx context.Context, pod *corev1.Pod, condition func(*corev1.Pod) bool, mutate func(*corev1.Pod) error) (bool, error) {
	podUID := pod.UID
	podKey := k8s.NamespacedName(pod)

	for {
		if condition(pod) {
			return false, nil
		}

		oldPod := pod.DeepCopy()
		oldPod.UID = "" // only the new object carries uid, so the server enforces it as a precondition.

		if err := mutate(pod); err != nil {
			return false, err
		}

		patchOption := client.MergeFromWithOptions(oldPod, client.MergeFromWithOptimisticLock{})
		if err := m.k8sClient.Patch(ctx, pod, patchOption); err != nil {
			if apierrors.IsNotFound(err) {
				return false, nil
			}
			if apierrors.IsConflict(err) {
				if err := m.k8sClient.Get(ctx, podKey, pod); err != nil {
					if apierrors.IsNotFound(err) {
						return false, nil
					}
					return false, err
				}
				if pod.UID != podUID {
					return false, nil
				}
				continue
			}
			return false, err
		}

		err := wait.ExponentialBackoff(retry.DefaultBackoff, func() (bool, error) {
			if condition(pod) {
				return true, nil
			}
			if err := m.k8sClient.Get(ctx, podKey, pod); err != nil {
				if apierrors.IsNotFound(err) {
					return true, nil
				}
				return false, err
			}
			if pod.UID != podUID {
				return true, nil
			}
			return false, nil
		})
		if err != nil {
			return false, err
		}
		return true, nil
	}
}
