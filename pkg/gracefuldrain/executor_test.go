package gracefuldrain

import (
	"context"
	"testing"
	"time"

	"github.com/go-logr/logr/testr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	elbv2api "sigs.k8s.io/pod-graceful-drain/apis/elbv2/v1beta1"
	"sigs.k8s.io/pod-graceful-drain/pkg/podstate"
)

func newExecutorScheme() *runtime.Scheme {
	scheme := runtime.NewScheme()
	_ = clientgoscheme.AddToScheme(scheme)
	_ = elbv2api.AddToScheme(scheme)
	return scheme
}

func newBoundPod(name string) *corev1.Pod {
	return &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{Namespace: "default", Name: name, Labels: map[string]string{"app": "nginx"}},
		Status: corev1.PodStatus{
			Conditions: []corev1.PodCondition{{Type: corev1.PodReady, Status: corev1.ConditionTrue}},
		},
	}
}

func ipTargetTypePtr() *elbv2api.TargetType {
	t := elbv2api.TargetTypeIP
	return &t
}

func TestExecutor_InterceptDeletion_notBound_allows(t *testing.T) {
	pod := newBoundPod("foo")
	k8sClient := fake.NewClientBuilder().WithScheme(newExecutorScheme()).WithObjects(pod).Build()

	cfg := Config{DeleteAfter: 90 * time.Second}
	executor := NewExecutor(cfg, k8sClient, testr.New(t))

	allow, reason, err := executor.InterceptDeletion(context.Background(), pod, nil)
	require.NoError(t, err)
	assert.True(t, allow)
	assert.Empty(t, reason)
}

func TestExecutor_InterceptDeletion_bound_isolatesAndDenies(t *testing.T) {
	pod := newBoundPod("foo")
	svc := &corev1.Service{
		ObjectMeta: metav1.ObjectMeta{Namespace: "default", Name: "svc"},
		Spec:       corev1.ServiceSpec{Selector: map[string]string{"app": "nginx"}},
	}
	tgb := &elbv2api.TargetGroupBinding{
		ObjectMeta: metav1.ObjectMeta{Namespace: "default", Name: "tgb"},
		Spec: elbv2api.TargetGroupBindingSpec{
			TargetGroupARN: "arn:aws:elasticloadbalancing:tg/foo",
			TargetType:     ipTargetTypePtr(),
			ServiceRef:     elbv2api.ServiceReference{Name: "svc", Port: 80},
		},
	}
	k8sClient := fake.NewClientBuilder().WithScheme(newExecutorScheme()).WithObjects(pod, svc, tgb).Build()

	cfg := Config{DeleteAfter: 50 * time.Millisecond}
	executor := NewExecutor(cfg, k8sClient, testr.New(t))

	allow, reason, err := executor.InterceptDeletion(context.Background(), pod, nil)
	require.NoError(t, err)
	assert.False(t, allow)
	assert.Equal(t, denyReason, reason)

	var patched corev1.Pod
	require.NoError(t, k8sClient.Get(context.Background(), client.ObjectKeyFromObject(pod), &patched))
	assert.Equal(t, "true", patched.Labels[podstate.WaitLabelKey])

	executor.Shutdown()
}

func TestExecutor_InterceptDeletion_reentry_stillWaiting_denies(t *testing.T) {
	pod := newBoundPod("foo")
	pod.Labels = map[string]string{podstate.WaitLabelKey: "true"}
	pod.Annotations = map[string]string{podstate.DeleteAtAnnotationKey: time.Now().Add(time.Minute).Format(time.RFC3339)}
	k8sClient := fake.NewClientBuilder().WithScheme(newExecutorScheme()).WithObjects(pod).Build()

	cfg := Config{DeleteAfter: 90 * time.Second}
	executor := NewExecutor(cfg, k8sClient, testr.New(t))

	allow, reason, err := executor.InterceptDeletion(context.Background(), pod, nil)
	require.NoError(t, err)
	assert.False(t, allow)
	assert.Equal(t, reentryDenyReason, reason)
}

func TestExecutor_InterceptDeletion_reentry_deleteUnderway_allows(t *testing.T) {
	pod := newBoundPod("foo")
	pod.Labels = map[string]string{podstate.WaitLabelKey: ""}
	k8sClient := fake.NewClientBuilder().WithScheme(newExecutorScheme()).WithObjects(pod).Build()

	cfg := Config{DeleteAfter: 90 * time.Second}
	executor := NewExecutor(cfg, k8sClient, testr.New(t))

	allow, _, err := executor.InterceptDeletion(context.Background(), pod, nil)
	require.NoError(t, err)
	assert.True(t, allow)
}

func TestExecutor_InterceptEviction_bound_isolates(t *testing.T) {
	pod := newBoundPod("foo")
	svc := &corev1.Service{
		ObjectMeta: metav1.ObjectMeta{Namespace: "default", Name: "svc"},
		Spec:       corev1.ServiceSpec{Selector: map[string]string{"app": "nginx"}},
	}
	tgb := &elbv2api.TargetGroupBinding{
		ObjectMeta: metav1.ObjectMeta{Namespace: "default", Name: "tgb"},
		Spec: elbv2api.TargetGroupBindingSpec{
			TargetGroupARN: "arn:aws:elasticloadbalancing:tg/foo",
			TargetType:     ipTargetTypePtr(),
			ServiceRef:     elbv2api.ServiceReference{Name: "svc", Port: 80},
		},
	}
	k8sClient := fake.NewClientBuilder().WithScheme(newExecutorScheme()).WithObjects(pod, svc, tgb).Build()

	cfg := Config{DeleteAfter: 50 * time.Millisecond}
	executor := NewExecutor(cfg, k8sClient, testr.New(t))

	isolate, err := executor.InterceptEviction(context.Background(), pod, nil)
	require.NoError(t, err)
	assert.True(t, isolate)

	executor.Shutdown()
}

func TestExecutor_InterceptEviction_reentry_doesNotReisolate(t *testing.T) {
	pod := newBoundPod("foo")
	pod.Labels = map[string]string{podstate.WaitLabelKey: "true"}
	pod.Annotations = map[string]string{podstate.DeleteAtAnnotationKey: time.Now().Add(time.Minute).Format(time.RFC3339)}
	k8sClient := fake.NewClientBuilder().WithScheme(newExecutorScheme()).WithObjects(pod).Build()

	cfg := Config{DeleteAfter: 90 * time.Second}
	executor := NewExecutor(cfg, k8sClient, testr.New(t))

	isolate, err := executor.InterceptEviction(context.Background(), pod, nil)
	require.NoError(t, err)
	assert.False(t, isolate)
}

func TestExecutor_RecoverPending_reschedulesWaitingPods(t *testing.T) {
	pod := newBoundPod("foo")
	pod.Labels = map[string]string{podstate.WaitLabelKey: "true"}
	pod.Annotations = map[string]string{podstate.DeleteAtAnnotationKey: time.Now().Add(30 * time.Millisecond).Format(time.RFC3339)}
	k8sClient := fake.NewClientBuilder().WithScheme(newExecutorScheme()).WithObjects(pod).Build()

	cfg := Config{DeleteAfter: 90 * time.Second}
	executor := NewExecutor(cfg, k8sClient, testr.New(t))

	require.NoError(t, executor.RecoverPending(context.Background()))

	assert.Eventually(t, func() bool {
		var got corev1.Pod
		err := k8sClient.Get(context.Background(), client.ObjectKeyFromObject(pod), &got)
		return apierrors.IsNotFound(err)
	}, time.Second, 10*time.Millisecond)

	executor.Shutdown()
}

func TestExecutor_Shutdown_isIdempotentAndDrains(t *testing.T) {
	cfg := Config{DeleteAfter: 10 * time.Millisecond}
	executor := NewExecutor(cfg, fake.NewClientBuilder().WithScheme(newExecutorScheme()).Build(), testr.New(t))
	executor.Shutdown()
	executor.Shutdown()
}
