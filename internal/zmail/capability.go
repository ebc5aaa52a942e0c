package zmail

// Capability names a group of operations a transport can reach. Gating is
// checked before dispatch so an unsupported operation fails fast instead of
// surfacing a deeper remote error.
type Capability string

const (
	CapAccounts Capability = "accounts"
	CapFolders  Capability = "folders"
	CapLabels   Capability = "labels"
	CapMessages Capability = "messages"
	CapUpdate   Capability = "update"
	CapDelete   Capability = "delete"
	CapSend     Capability = "send"
)

// CapabilitySet is the static set of capabilities a transport exposes
type CapabilitySet map[Capability]bool

// Has reports whether the set contains the capability
func (s CapabilitySet) Has(c Capability) bool {
	return s[c]
}

// FullCapabilities covers the whole REST surface; exposed by helpers that
// support generic proxied requests.
func FullCapabilities() CapabilitySet {
	return CapabilitySet{
		CapAccounts: true,
		CapFolders:  true,
		CapLabels:   true,
		CapMessages: true,
		CapUpdate:   true,
		CapDelete:   true,
		CapSend:     true,
	}
}

// SendOnlyCapabilities matches old helper builds whose integration exposes a
// single high-level send action and nothing else.
func SendOnlyCapabilities() CapabilitySet {
	return CapabilitySet{CapSend: true}
}
