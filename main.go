/*


Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"context"
	"flag"
	"os"

	"github.com/spf13/pflag"
	"k8s.io/apimachinery/pkg/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	elbv2api "sigs.k8s.io/pod-graceful-drain/apis/elbv2/v1beta1"
	"sigs.k8s.io/pod-graceful-drain/pkg/config"
	"sigs.k8s.io/pod-graceful-drain/pkg/gracefuldrain"
	pgdwebhook "sigs.k8s.io/pod-graceful-drain/webhooks/pod"
	// +kubebuilder:scaffold:imports
)

var (
	scheme   = runtime.NewScheme()
	setupLog = ctrl.Log.WithName("setup")
)

func init() {
	_ = clientgoscheme.AddToScheme(scheme)
	_ = elbv2api.AddToScheme(scheme)
	// +kubebuilder:scaffold:scheme
}

func main() {
	controllerCFG := config.ControllerConfig{}
	fs := pflag.NewFlagSet("", pflag.ExitOnError)
	controllerCFG.BindFlags(fs)
	fs.AddGoFlagSet(flag.CommandLine)
	if err := fs.Parse(os.Args); err != nil {
		setupLog.Error(err, "invalid flags")
		os.Exit(1)
	}

	ctrl.SetLogger(zap.New(zap.UseDevMode(controllerCFG.LogLevel == "debug")))

	if err := controllerCFG.Validate(); err != nil {
		setupLog.Error(err, "invalid controller configuration")
		os.Exit(1)
	}

	restCFG, err := config.BuildRestConfig(controllerCFG.RuntimeConfig)
	if err != nil {
		setupLog.Error(err, "unable to build REST config")
		os.Exit(1)
	}

	runtimeOpts, err := config.BuildRuntimeOptions(controllerCFG.RuntimeConfig, scheme)
	if err != nil {
		setupLog.Error(err, "unable to build runtime options")
		os.Exit(1)
	}

	mgr, err := ctrl.NewManager(restCFG, runtimeOpts)
	if err != nil {
		setupLog.Error(err, "unable to start manager")
		os.Exit(1)
	}

	executor := gracefuldrain.NewExecutor(controllerCFG.GracefulDrainConfig, mgr.GetClient(), ctrl.Log.WithName("gracefuldrain"))

	deletionValidator := pgdwebhook.NewPodDeletionValidator(executor, controllerCFG.GracefulDrainConfig.IgnoreError, ctrl.Log.WithName("webhooks").WithName("pod-deletion"))
	if err := deletionValidator.SetupWebhookWithManager(mgr); err != nil {
		setupLog.Error(err, "unable to create webhook", "webhook", "PodDeletionValidator")
		os.Exit(1)
	}

	evictionMutator := pgdwebhook.NewPodEvictionMutator(executor, mgr.GetClient(), controllerCFG.GracefulDrainConfig.IgnoreError, ctrl.Log.WithName("webhooks").WithName("pod-eviction"))
	if err := evictionMutator.SetupWebhookWithManager(mgr); err != nil {
		setupLog.Error(err, "unable to create webhook", "webhook", "PodEvictionMutator")
		os.Exit(1)
	}
	// +kubebuilder:scaffold:builder

	if err := mgr.Add(startupRecoveryRunnable{executor: executor}); err != nil {
		setupLog.Error(err, "unable to register startup recovery")
		os.Exit(1)
	}

	setupLog.Info("starting manager")
	ctx := ctrl.SetupSignalHandler()
	if err := mgr.Start(ctx); err != nil {
		setupLog.Error(err, "problem running manager")
		os.Exit(1)
	}

	executor.Shutdown()
}

// startupRecoveryRunnable runs RecoverPending once the manager's cache has
// synced, rescheduling any pod left mid-drain by a previous process.
type startupRecoveryRunnable struct {
	executor *gracefuldrain.Executor
}

func (r startupRecoveryRunnable) Start(ctx context.Context) error {
	return r.executor.RecoverPending(ctx)
}
