// Package optim defines the capability interfaces through which a generic
// optimization driver talks to analysis objects, and the System that
// composes their sparse constraint blocks.
//
// # Capabilities
//
// DesignVars lets an object adopt, report and bound design variables.
// SparseConstraints extends it with a block of constraint rows in one
// shared compressed-row (CSR) system. Both are optional. Objects that do
// not implement them are handled by the no-op defaults NoDesignVars and
// NoSparseConstraints, which DesignVarsOf and ConstraintsOf substitute, so
// the driver never needs to type-check participants.
//
// # Offsets
//
// Every SparseConstraints method takes an offset: the number of rows already
// claimed by earlier blocks. Block i in a System is called with
//
//	offset_i = NumCon(block_0) + ... + NumCon(block_{i-1})
//
// and owns rows [offset_i, offset_i + NumCon(block_i)). The pattern a block
// registers in AddConCSR is the contract EvalConDVSens must fill exactly.
// CheckPattern verifies that contract.
package optim
