// Package cpu implements the register machine of the SimpleCPU simulator.
//
// The CPU consists of a program counter (PC), eight general-purpose
// registers (R0-R7, with R7 doubling as the JAL link register), a 256 cell
// memory bus, and a small address keyed cache that can be enabled, disabled,
// and flushed from the instruction stream.
//
// Programs are sequences of textual records such as "ADDI,R1,R0,5" or
// "LW,R2,4(R1)". Each record is decoded just before it executes.
package cpu
