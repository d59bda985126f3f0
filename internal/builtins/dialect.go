package builtins

// Builtin describes one built-in operation of the EVM dialect: its fixed
// arity, how many values it produces and its effect class.
type Builtin struct {
	Name    string
	Params  int
	Returns int
	Effect  Effect
}

// All lists every built-in operation in a stable order. Completion and
// documentation tooling iterate this slice directly.
var All = []Builtin{
	// Arithmetic, comparison and bitwise operations work on stack values
	// alone and are freely removable.
	{"add", 2, 1, Pure},
	{"sub", 2, 1, Pure},
	{"mul", 2, 1, Pure},
	{"div", 2, 1, Pure},
	{"sdiv", 2, 1, Pure},
	{"mod", 2, 1, Pure},
	{"smod", 2, 1, Pure},
	{"exp", 2, 1, Pure},
	{"not", 1, 1, Pure},
	{"lt", 2, 1, Pure},
	{"gt", 2, 1, Pure},
	{"slt", 2, 1, Pure},
	{"sgt", 2, 1, Pure},
	{"eq", 2, 1, Pure},
	{"iszero", 1, 1, Pure},
	{"and", 2, 1, Pure},
	{"or", 2, 1, Pure},
	{"xor", 2, 1, Pure},
	{"byte", 2, 1, Pure},
	{"shl", 2, 1, Pure},
	{"shr", 2, 1, Pure},
	{"sar", 2, 1, Pure},
	{"addmod", 3, 1, Pure},
	{"mulmod", 3, 1, Pure},
	{"signextend", 2, 1, Pure},
	{"pop", 1, 0, Pure},

	// Readers observe memory, storage, calldata or the environment.
	{"mload", 1, 1, ReadsState},
	{"sload", 1, 1, ReadsState},
	{"tload", 1, 1, ReadsState},
	{"calldataload", 1, 1, ReadsState},
	{"calldatasize", 0, 1, ReadsState},
	{"balance", 1, 1, ReadsState},
	{"extcodesize", 1, 1, ReadsState},
	{"extcodehash", 1, 1, ReadsState},
	{"blockhash", 1, 1, ReadsState},
	{"keccak256", 2, 1, ReadsState},
	{"address", 0, 1, ReadsState},
	{"origin", 0, 1, ReadsState},
	{"caller", 0, 1, ReadsState},
	{"callvalue", 0, 1, ReadsState},
	{"codesize", 0, 1, ReadsState},
	{"gasprice", 0, 1, ReadsState},
	{"returndatasize", 0, 1, ReadsState},
	{"coinbase", 0, 1, ReadsState},
	{"timestamp", 0, 1, ReadsState},
	{"number", 0, 1, ReadsState},
	{"prevrandao", 0, 1, ReadsState},
	{"gaslimit", 0, 1, ReadsState},
	{"chainid", 0, 1, ReadsState},
	{"selfbalance", 0, 1, ReadsState},
	{"basefee", 0, 1, ReadsState},

	// Writers change state, emit logs or make external calls. gas, msize
	// and pc sit here too: their results depend on exactly when they run,
	// so they must never be removed or reordered.
	{"mstore", 2, 0, HasSideEffect},
	{"mstore8", 2, 0, HasSideEffect},
	{"sstore", 2, 0, HasSideEffect},
	{"tstore", 2, 0, HasSideEffect},
	{"mcopy", 3, 0, HasSideEffect},
	{"calldatacopy", 3, 0, HasSideEffect},
	{"codecopy", 3, 0, HasSideEffect},
	{"returndatacopy", 3, 0, HasSideEffect},
	{"extcodecopy", 4, 0, HasSideEffect},
	{"log0", 2, 0, HasSideEffect},
	{"log1", 3, 0, HasSideEffect},
	{"log2", 4, 0, HasSideEffect},
	{"log3", 5, 0, HasSideEffect},
	{"log4", 6, 0, HasSideEffect},
	{"create", 3, 1, HasSideEffect},
	{"create2", 4, 1, HasSideEffect},
	{"call", 7, 1, HasSideEffect},
	{"callcode", 7, 1, HasSideEffect},
	{"delegatecall", 6, 1, HasSideEffect},
	{"staticcall", 6, 1, HasSideEffect},
	{"gas", 0, 1, HasSideEffect},
	{"msize", 0, 1, HasSideEffect},
	{"pc", 0, 1, HasSideEffect},

	// Terminators end execution of the current context.
	{"stop", 0, 0, NeverReturns},
	{"return", 2, 0, NeverReturns},
	{"revert", 2, 0, NeverReturns},
	{"invalid", 0, 0, NeverReturns},
	{"selfdestruct", 1, 0, NeverReturns},
}

var byName = indexByName()

func indexByName() map[string]Builtin {
	m := make(map[string]Builtin, len(All))
	for _, b := range All {
		m[b.Name] = b
	}
	return m
}

// Lookup returns the builtin with the given name.
func Lookup(name string) (Builtin, bool) {
	b, ok := byName[name]
	return b, ok
}

// IsBuiltin checks whether a name refers to a built-in operation. Builtin
// names are reserved and cannot name functions or variables.
func IsBuiltin(name string) bool {
	_, ok := byName[name]
	return ok
}
