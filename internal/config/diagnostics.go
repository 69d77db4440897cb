package config

// IntegrationStatus reports whether one named integration credential is set.
type IntegrationStatus struct {
	Name    string `json:"name"`
	Present bool   `json:"present"`
}

// Diagnostics lists which integration credentials are present vs. missing,
// for operational troubleshooting at deploy time. Values are never echoed.
func (c *Config) Diagnostics() []IntegrationStatus {
	return []IntegrationStatus{
		{Name: "identity_client_id", Present: c.Integrations.IdentityClientID != ""},
		{Name: "sheets_api_key", Present: c.Integrations.SheetsAPIKey != ""},
		{Name: "genai_api_key", Present: c.Integrations.GenAIAPIKey != ""},
		{Name: "cloud_project_id", Present: c.Integrations.CloudProjectID != ""},
		{Name: "cloud_api_key", Present: c.Integrations.CloudAPIKey != ""},
		{Name: "remote_sync", Present: c.Remote.Enabled()},
	}
}
