// Package lbreachability answers whether a pod was -- or still is -- wired
// into an IP-target load balancer whose deregistration is worth waiting out.
// It ports pod-graceful-drain's fetchTGBsForDelayedDeletion into a named
// Oracle interface with a second, Ingress-based implementation.
package lbreachability

import (
	"context"
	"strings"

	"github.com/go-logr/logr"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/meta"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"

	elbv2api "sigs.k8s.io/pod-graceful-drain/apis/elbv2/v1beta1"
)

// TargetHealthPodConditionTypePrefix marks readiness gates installed by a
// TargetGroupBinding's health-check reconciliation.
const TargetHealthPodConditionTypePrefix = "target-health.elbv2.k8s.aws"

// Oracle answers whether a pod was attached to a load balancer whose
// deregistration should be waited out before the pod is removed.
type Oracle interface {
	IsAttached(ctx context.Context, pod *corev1.Pod) (bool, error)
}

// targetGroupBindingOracle implements Oracle against IP-target
// TargetGroupBindings, the default and only non-experimental discovery mode.
type targetGroupBindingOracle struct {
	k8sClient client.Client
	logger    logr.Logger
}

// New constructs the default, TargetGroupBinding-backed Oracle.
func New(k8sClient client.Client, logger logr.Logger) Oracle {
	return &targetGroupBindingOracle{k8sClient: k8sClient, logger: logger}
}

func (o *targetGroupBindingOracle) IsAttached(ctx context.Context, pod *corev1.Pod) (bool, error) {
	tgbList := &elbv2api.TargetGroupBindingList{}
	if err := o.k8sClient.List(ctx, tgbList, client.InNamespace(pod.Namespace)); err != nil {
		// a missing CRD (the TargetGroupBinding controller isn't installed)
		// is indistinguishable from "no bindings" for our purposes.
		if meta.IsNoMatchError(err) {
			return hasTargetHealthReadinessGate(pod), nil
		}
		return false, err
	}

	for _, tgb := range tgbList.Items {
		if tgb.Spec.TargetType == nil || *tgb.Spec.TargetType != elbv2api.TargetTypeIP {
			continue
		}

		svcKey := types.NamespacedName{Namespace: tgb.Namespace, Name: tgb.Spec.ServiceRef.Name}
		svc := &corev1.Service{}
		if err := o.k8sClient.Get(ctx, svcKey, svc); err != nil {
			if apierrors.IsNotFound(err) {
				continue
			}
			return false, err
		}

		var selector labels.Selector
		if len(svc.Spec.Selector) == 0 {
			selector = labels.Nothing()
		} else {
			selector = labels.SelectorFromSet(svc.Spec.Selector)
		}
		if selector.Matches(labels.Set(pod.Labels)) {
			return true, nil
		}
	}

	return hasTargetHealthReadinessGate(pod), nil
}

func hasTargetHealthReadinessGate(pod *corev1.Pod) bool {
	for _, gate := range pod.Spec.ReadinessGates {
		if strings.HasPrefix(string(gate.ConditionType), TargetHealthPodConditionTypePrefix) {
			// bookkeeping is lost but the pod was once bound; it's prudent
			// to wait.
			return true
		}
	}
	return false
}
