package oauth

import (
	"context"

	"tripwatch-service/pkg/logger"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// GatewayOAuth provides bearer tokens for the WhatsApp gateway using the
// client-credentials grant
type GatewayOAuth struct {
	config *clientcredentials.Config
	logger logger.Logger
}

// NewGatewayOAuth creates a new gateway OAuth helper
func NewGatewayOAuth(clientID, clientSecret, tokenURL string, logger logger.Logger) *GatewayOAuth {
	return &GatewayOAuth{
		config: &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     tokenURL,
		},
		logger: logger,
	}
}

// GetTokenSource returns a self-refreshing token source
func (g *GatewayOAuth) GetTokenSource(ctx context.Context) oauth2.TokenSource {
	return g.config.TokenSource(ctx)
}
