// Package ui contains the Bubble Tea program that presents a deck.
// Model focuses on message orchestration, while dedicated helpers own input,
// mouse zones, the jump list, rendering and backend updates.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function.
//   - Keys go to the gallery overlay while it is open, to the jump list while
//     it is shown, and to the primary surface otherwise (input.go).
//   - Mouse motion and clicks are resolved to bubblezone ids (mouse.go). Hovered
//     zones pause autoplay; clicks navigate.
//
// Time:
//   - Surfaces schedule every timer and animation frame through a
//     clock.Scheduler. In a running program that is loopScheduler, which posts a
//     timerFiredMsg back into the program so callbacks always run inside Update.
//     Tests pass a manual clock and advance it explicitly.
//
// Backend interactions:
//   - Mounting a surface returns a probe request. The preload runner probes the
//     media in the background and each outcome arrives as a probeOutcomeMsg
//     tagged with the surface id; outcomes for a surface that has since been
//     torn down are dropped.
//   - A backend.Watcher streams deck file changes. A valid reload remounts the
//     primary surface from scratch; a broken file is reported and the current
//     deck stays up.
//   - Clipboard and reload actions run through the internal/ui/command bus and
//     come back as command.Result messages.
package ui
