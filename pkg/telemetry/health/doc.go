// Package health provides liveness and readiness probes for long-running
// formula processes such as the library watcher.
//
// Liveness only reports that the process is up. Readiness runs every
// registered component check concurrently, each bounded by a timeout, and
// reports "degraded" when any of them fails.
//
// # Usage
//
//	checker := health.New(2 * time.Second)
//	checker.RegisterCheck("library", watcher.HealthCheck)
//
//	mux := http.NewServeMux()
//	health.Register(mux, checker, health.VersionInfo{Version: "0.1.0"})
//
// The registered paths are /healthz, /readyz and /version. Readiness
// answers 503 while the system is degraded.
package health
