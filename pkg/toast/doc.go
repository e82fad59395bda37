// Package toast shows transient notifications. Each toast lives in a
// Container for a fixed display period, is then marked leaving for the exit
// animation, and is removed afterwards. Toasts stack in creation order and
// run on independent timers.
package toast
