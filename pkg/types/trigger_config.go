package types

// TriggerConfig DTO armazena as configurações do gatilho S3 -> Lambda.
type TriggerConfig struct {
	Bucket string
	Prefix string // filtro opcional de prefixo da chave
	Suffix string // filtro opcional de sufixo da chave, ex: ".csv"
}

// BucketArn retorna o ARN do bucket usado como SourceArn da permissão.
func (t *TriggerConfig) BucketArn() string {
	return "arn:aws:s3:::" + t.Bucket
}
