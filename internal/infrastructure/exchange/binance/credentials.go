package binance

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
)

// Environment variables the credential source reads.
const (
	EnvAPIKey    = "APIKEY"
	EnvSecretKey = "SECRETKEY"
)

// ===== Credentials 凭证 =====

// Credentials 包含 API 凭证和签名方法，创建后不可变，需通过 Client.SetCredentials 整体替换
type Credentials struct {
	apiKey    string
	secretKey string
}

// NewCredentials builds credentials from explicit values. Both keys must be non-empty.
func NewCredentials(apiKey, secretKey string) (*Credentials, error) {
	if apiKey == "" {
		return nil, &MissingCredentialError{Name: EnvAPIKey}
	}
	if secretKey == "" {
		return nil, &MissingCredentialError{Name: EnvSecretKey}
	}
	return &Credentials{
		apiKey:    apiKey,
		secretKey: secretKey,
	}, nil
}

// CredentialsFromEnv resolves APIKEY and SECRETKEY from the process environment.
func CredentialsFromEnv() (*Credentials, error) {
	return CredentialsFromLookup(os.LookupEnv)
}

// CredentialsFromLookup resolves credentials through lookup, which has the
// signature of os.LookupEnv.
func CredentialsFromLookup(lookup func(string) (string, bool)) (*Credentials, error) {
	log.Debug().Str("env", EnvAPIKey).Msg("resolving api key")
	apiKey, ok := lookup(EnvAPIKey)
	if !ok || apiKey == "" {
		return nil, &MissingCredentialError{Name: EnvAPIKey}
	}

	log.Debug().Str("env", EnvSecretKey).Msg("resolving secret key")
	secretKey, ok := lookup(EnvSecretKey)
	if !ok || secretKey == "" {
		return nil, &MissingCredentialError{Name: EnvSecretKey}
	}

	return &Credentials{
		apiKey:    apiKey,
		secretKey: secretKey,
	}, nil
}

// Sign 生成 HMAC-SHA256 签名
func (c *Credentials) Sign(canonical string) string {
	return Sign(canonical, c.secretKey)
}

// APIKey 返回 API Key
func (c *Credentials) APIKey() string {
	return c.apiKey
}

// String keeps the secret out of logs and fmt output.
func (c *Credentials) String() string {
	return fmt.Sprintf("Credentials{apiKey: %s, secretKey: ***}", maskKey(c.apiKey))
}

func maskKey(key string) string {
	if len(key) <= 8 {
		return "***"
	}
	return key[:4] + "***" + key[len(key)-4:]
}
