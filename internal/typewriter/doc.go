// Package typewriter implements the typing animation shown in the folio
// header. The animation is a two-phase state machine cycling forever over a
// fixed sequence of role labels: characters are typed one per tick, held,
// erased one per tick, and the next role begins. The machine is a plain
// value advanced by Advance, so any scheduler (a bubbletea tick, a timer
// goroutine, a test loop) can drive it.
package typewriter
