package credential

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// SecretsManagerProvider reads the key from AWS Secrets Manager using the
// ambient credential chain (env, shared config, instance role).
type SecretsManagerProvider struct {
	// Region overrides the region from the ambient AWS config when set.
	Region   string
	SecretID string

	// client, when set, bypasses config loading. For tests.
	client secretsValueGetter
}

type secretsValueGetter interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

func (p *SecretsManagerProvider) Key(ctx context.Context) (string, error) {
	client := p.client
	if client == nil {
		var opts []func(*awsconfig.LoadOptions) error
		if p.Region != "" {
			opts = append(opts, awsconfig.WithRegion(p.Region))
		}
		cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return "", fmt.Errorf("loading AWS config: %w", err)
		}
		client = secretsmanager.NewFromConfig(cfg)
	}

	out, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(p.SecretID),
	})
	if err != nil {
		return "", fmt.Errorf("fetching secret %q: %w", p.SecretID, err)
	}
	if out.SecretString == nil {
		return "", fmt.Errorf("secret %q holds binary data, expected a string", p.SecretID)
	}
	return *out.SecretString, nil
}
