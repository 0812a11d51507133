package config

const (
	ConfigFileEnvVar  = "POLARION_CONFIG_FILE"
	DefaultConfigPath = "~/.go-polarion/config.yaml"
)

type Config struct {
	Server Server `yaml:"server"`
}

type Server struct {
	BaseURL          string            `yaml:"base-url"`
	DefaultHeaders   map[string]string `yaml:"default-headers,omitempty"`
	ParameterNamesJQ string            `yaml:"parameter-names-jq,omitempty"`
	Auth             *Auth             `yaml:"auth,omitempty"`
	TLS              *TLS              `yaml:"tls,omitempty"`
}

type Auth struct {
	BasicAuth    *BasicAuth       `yaml:"basic-auth,omitempty"`
	BearerToken  *BearerTokenAuth `yaml:"bearer-token,omitempty"`
	CustomHeader *HeaderTokenAuth `yaml:"custom-header,omitempty"`
}

type BasicAuth struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type BearerTokenAuth struct {
	Token string `yaml:"token"`
}

type HeaderTokenAuth struct {
	Header string `yaml:"header"`
	Token  string `yaml:"token"`
}

type TLS struct {
	CACertFile         string `yaml:"ca-cert-file,omitempty"`
	ClientCertFile     string `yaml:"client-cert-file,omitempty"`
	ClientKeyFile      string `yaml:"client-key-file,omitempty"`
	InsecureSkipVerify bool   `yaml:"insecure-skip-verify,omitempty"`
}
