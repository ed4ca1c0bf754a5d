// Package telemetry reports runtime measurements to Prometheus and
// OpenTelemetry.
//
// A Collector implements feather.Observer. Pass it in feather.Options to
// count renders, commits and contained panics, and to emit one span per
// render pass and effect commit:
//
//	reg := prometheus.NewRegistry()
//	col := telemetry.New(telemetry.WithRegistry(reg))
//	root := feather.MountWith(feather.Options{Observer: col}, body, app, nil)
//
// The live server also uses the Collector for viewer and frame counts.
//
// Metrics collected (namespace "feather" by default):
//   - feather_renders_total: render passes
//   - feather_render_duration_seconds: render pass duration
//   - feather_mutations_total: live tree mutations applied by renders
//   - feather_instances: component instances alive after the last render
//   - feather_instances_disposed_total: instances discarded by renders
//   - feather_commits_total: effect commits
//   - feather_commit_duration_seconds: effect commit duration
//   - feather_effects_total: effects run
//   - feather_cleanups_total: cleanups run
//   - feather_errors_total: structured runtime errors by code
//   - feather_viewers: connected stream viewers
//   - feather_frames_sent_total: frames written to viewers
//   - feather_websocket_errors_total: stream errors by type
//
// Spans use the global tracer provider unless WithTracer is given. Configure
// the provider before mounting:
//
//	otel.SetTracerProvider(tp)
package telemetry
