package types

// DeploymentState é a estrutura principal que armazena todo o estado final
// de um deploy Lambda + gatilho S3.
type DeploymentState struct {
	RoleName     string   `json:"role_name"`
	RoleManaged  bool     `json:"role_managed"` // true quando a role foi criada pela ferramenta
	FunctionName string   `json:"function_name"`
	FunctionArn  *string  `json:"function_arn"`
	Bucket       string   `json:"bucket"`
	StatementID  string   `json:"statement_id"`
	LogGroup     string   `json:"log_group"`
	PolicyARNs   []string `json:"attached_policy_arns"`
}
