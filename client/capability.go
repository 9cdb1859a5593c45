package client

// SupportsQuota returns true if the server supports the QUOTA extension.
func (c *Client) SupportsQuota() bool {
	return c.HasCap("QUOTA")
}

// SupportsSpecialUse returns true if the server supports SPECIAL-USE.
func (c *Client) SupportsSpecialUse() bool {
	return c.HasCap("SPECIAL-USE")
}

// SupportsSASLIR returns true if the server supports SASL initial
// responses.
func (c *Client) SupportsSASLIR() bool {
	return c.HasCap("SASL-IR")
}
