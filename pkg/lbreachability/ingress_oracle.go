package lbreachability

import (
	"context"

	"github.com/go-logr/logr"
	corev1 "k8s.io/api/core/v1"
	networkingv1 "k8s.io/api/networking/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

// ingressOracle implements Oracle by resolving Ingress backends to Services,
// for deployments that front their IP-target load balancers with an Ingress
// rather than binding a TargetGroupBinding directly to a Service. Enabled by
// the --experimental-general-ingress flag.
type ingressOracle struct {
	k8sClient client.Client
	logger    logr.Logger
}

// NewIngressOracle constructs the experimental Ingress-backed Oracle.
func NewIngressOracle(k8sClient client.Client, logger logr.Logger) Oracle {
	return &ingressOracle{k8sClient: k8sClient, logger: logger}
}

func (o *ingressOracle) IsAttached(ctx context.Context, pod *corev1.Pod) (bool, error) {
	ingressList := &networkingv1.IngressList{}
	if err := o.k8sClient.List(ctx, ingressList, client.InNamespace(pod.Namespace)); err != nil {
		return false, err
	}

	svcNames := map[string]struct{}{}
	for _, ing := range ingressList.Items {
		for _, svcName := range backendServiceNames(&ing) {
			svcNames[svcName] = struct{}{}
		}
	}

	for svcName := range svcNames {
		svcKey := types.NamespacedName{Namespace: pod.Namespace, Name: svcName}
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

func backendServiceNames(ing *networkingv1.Ingress) []string {
	var names []string
	if ing.Spec.DefaultBackend != nil && ing.Spec.DefaultBackend.Service != nil {
		names = append(names, ing.Spec.DefaultBackend.Service.Name)
	}
	for _, rule := range ing.Spec.Rules {
		if rule.HTTP == nil {
			continue
		}
		for _, path := range rule.HTTP.Paths {
			if path.Backend.Service != nil {
				names = append(names, path.Backend.Service.Name)
			}
		}
	}
	return names
}
