// Package nodedrain answers whether a pod's node is already being drained,
// so admission denial doesn't fight kubectl drain (or an equivalent) at the
// first un-evictable pod. The teacher has no equivalent -- its flatter
// InterceptPodDeletion denies unconditionally -- so this is grounded on the
// node cordon/taint checks standard to any drain implementation.
package nodedrain

import (
	"context"

	"github.com/go-logr/logr"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

// unschedulableTaintKey is set by kubectl drain (and cluster-autoscaler,
// and most node-lifecycle controllers) before pods are evicted.
const unschedulableTaintKey = "node.kubernetes.io/unschedulable"

// Oracle answers whether a pod's node is being drained.
type Oracle interface {
	IsOnDrainingNode(ctx context.Context, pod *corev1.Pod) (bool, error)
}

type defaultOracle struct {
	k8sClient client.Client
	logger    logr.Logger
}

// New constructs the default Oracle.
func New(k8sClient client.Client, logger logr.Logger) Oracle {
	return &defaultOracle{k8sClient: k8sClient, logger: logger}
}

func (o *defaultOracle) IsOnDrainingNode(ctx context.Context, pod *corev1.Pod) (bool, error) {
	if pod.Spec.NodeName == "" {
		return false, nil
	}

	node := &corev1.Node{}
	if err := o.k8sClient.Get(ctx, client.ObjectKey{Name: pod.Spec.NodeName}, node); err != nil {
		if apierrors.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}

	if node.Spec.Unschedulable {
		return true, nil
	}
	for _, taint := range node.Spec.Taints {
		if taint.Key == unschedulableTaintKey {
			return true, nil
		}
	}
	return false, nil
}
