// Package signal is the circuit-description layer of the framework. It
// models payload shapes (Type), a per-elaboration arena of wires and nets
// (Circuit), and the value handle the elaboration core passes around
// (Signal, supporting clone, flip and connect).
//
// The package enforces only its own structural rules: shape equality on
// connect and the single-driver rule per wire. Anything smarter than that
// belongs to the connection-point implementations layered on top.
package signal
