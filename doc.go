// Package visage is a real-time expression synthesis engine for
// animated avatar faces.
//
// The engine holds one face: a parameter tree eased toward the active
// expression preset, overlaid per frame with preset motion rules
// (oscillation, shared jitter) and an autonomous liveness layer
// (blinking, idle micro-movement). Hosts tick it at a fixed frame rate
// and hand each composited snapshot to whatever renders the face.
//
// Minimal use:
//
//	engine, err := visage.New()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer engine.Close()
//
//	engine.SetExpression("happy")
//	for {
//		snap := engine.Tick(ctx)
//		render(snap) // 60 times per second
//	}
//
// The runner package drives the loop; the adapters expose control over
// HTTP and MCP; the remote channel follows an upstream agent's emotion
// feed.
package visage
