package temporal

// ContractWorkflowID derives the deterministic workflow ID for a line so
// signals and queries can address it without a lookup.
func ContractWorkflowID(contractID string) string {
	return "contract-" + contractID
}
