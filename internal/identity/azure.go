package identity

import (
	"context"
	"os"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

// azureTokenProvider implements TokenProvider on top of Azure credentials.
// It relies on ambient workload/managed identity; no secret is ever read
// from configuration.
type azureTokenProvider struct {
	credential  azcore.TokenCredential
	tokenOption policy.TokenRequestOptions
}

// NewAzureTokenProvider creates a TokenProvider scoped to the given resource
// (for Azure SQL: "https://database.windows.net//.default"). Credential
// selection, in order:
//   - AKS Workload Identity when AZURE_FEDERATED_TOKEN_FILE and
//     AZURE_TENANT_ID are present
//   - user-assigned managed identity when a client ID is supplied
//   - DefaultAzureCredential otherwise (covers system-assigned managed
//     identity, environment variables and azure-cli for development)
func NewAzureTokenProvider(clientID, scope string) (TokenProvider, error) {
	var credential azcore.TokenCredential
	var err error

	federatedTokenFile := os.Getenv("AZURE_FEDERATED_TOKEN_FILE")
	tenantID := os.Getenv("AZURE_TENANT_ID")

	switch {
	case federatedTokenFile != "" && tenantID != "":
		if clientID == "" {
			clientID = os.Getenv("AZURE_CLIENT_ID")
		}
		credential, err = azidentity.NewWorkloadIdentityCredential(&azidentity.WorkloadIdentityCredentialOptions{
			ClientID:      clientID,
			TenantID:      tenantID,
			TokenFilePath: federatedTokenFile,
		})
	case clientID != "":
		credential, err = azidentity.NewManagedIdentityCredential(&azidentity.ManagedIdentityCredentialOptions{
			ID: azidentity.ClientID(clientID),
		})
	default:
		credential, err = azidentity.NewDefaultAzureCredential(nil)
	}
	if err != nil {
		return nil, err
	}

	return &azureTokenProvider{
		credential:  credential,
		tokenOption: policy.TokenRequestOptions{Scopes: []string{scope}},
	}, nil
}

// GetToken retrieves an access token for the configured scope.
func (a *azureTokenProvider) GetToken(ctx context.Context) (TokenExpiry, error) {
	token, err := a.credential.GetToken(ctx, a.tokenOption)
	if err != nil {
		return TokenExpiry{}, err
	}
	return TokenExpiry{Token: token.Token, ExpiresAt: token.ExpiresOn}, nil
}
