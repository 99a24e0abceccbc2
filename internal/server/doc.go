// Package server hosts the vinyl over HTTP and a websocket.
//
// # Router Infrastructure
//
// [BasicRouter] routes requests with middleware support. A [Handler] groups
// endpoints that share state and lists its own patterns.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The router registers method patterns on [http.ServeMux], which answers 405 for
// a known path with the wrong method.
//
// # Websocket
//
// A [Hub] tracks connected clients, each with its own write pump so one slow
// client cannot stall the others; a client whose queue fills is dropped.
// Messages are JSON text frames with an envelope: {type, ts, data}.
//
// Clients send "pointer" messages carrying a rotation.PointerEvent. Pointer
// events are queued to the single goroutine that owns the gesture machine.
// The server answers with "frame" (a rotation.Snapshot on every change),
// "release", "deck" and "deck_update" messages. The first message on connect
// is "init" with the current frame and deck.
//
// # Routes
//
//	GET  /ws                    websocket
//	GET  /api/deck              current deck
//	POST /api/deck/regenerate   ?scope=current|all
//	GET  /api/vinyl             last published frame
//	GET  /healthz               liveness
package server
