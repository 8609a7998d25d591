// Package services holds the client-side state stores that sit between the
// view layer and the backend: session, outfit inventory, suggestions, weekly
// planner, chat, modal dialogs and flash messages, plus the Dashboard that
// owns them.
//
// Stores are safe for concurrent use. Each has a Close method; once closed a
// store drops responses still in flight instead of mutating its state.
// Background work (list refreshes, auto-load) logs failures; operations the
// user starts return them.
package services
