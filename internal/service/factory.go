package service

import (
	"streetnetwork.app/kinship/common/discord"
	"streetnetwork.app/kinship/common/llm"
	"streetnetwork.app/kinship/common/pinata"
	"streetnetwork.app/kinship/core/config"
	"streetnetwork.app/kinship/internal/store"
)

// Integrations holds the optional clients; nil means not configured.
type Integrations struct {
	Identity IdentityProvider
	Graph    TreeReader
	LLM      llm.Client
	Discord  discord.Client
	Pinata   pinata.Client
}

type Services struct {
	stores       *store.Stores
	images       store.ImageStore
	discordStats store.DiscordStatsStore
	nonces       store.NonceStore
	txRunner     TxRunner
	tasks        TaskEnqueuer
	integrations Integrations
	cfg          config.Config
}

func NewServices(
	stores *store.Stores,
	images store.ImageStore,
	discordStats store.DiscordStatsStore,
	nonces store.NonceStore,
	txRunner TxRunner,
	tasks TaskEnqueuer,
	integrations Integrations,
	cfg config.Config,
) *Services {
	return &Services{
		stores:       stores,
		images:       images,
		discordStats: discordStats,
		nonces:       nonces,
		txRunner:     txRunner,
		tasks:        tasks,
		integrations: integrations,
		cfg:          cfg,
	}
}

func (s *Services) Auth() AuthService {
	return NewAuthService(
		s.stores.Users(),
		s.stores.Sessions(),
		s.nonces,
		s.integrations.Identity,
		s.tasks,
		AuthConfig{
			SessionTTL:  s.cfg.Session.TTL,
			NonceTTL:    s.cfg.Session.NonceTTL,
			PasswordMin: s.cfg.Session.PasswordMin,
			AppURL:      s.cfg.AppURL,
		},
	)
}

func (s *Services) Users() UserService {
	return NewUserService(s.stores.Users(), s.stores.Milestones(), s.stores.Workspaces(), s.tasks)
}

func (s *Services) Relationships() RelationshipService {
	return NewRelationshipService(
		s.stores.FamilyConnections(),
		s.stores.Users(),
		s.stores.WorkspaceMembers(),
		s.stores.WorkspaceRelationships(),
		s.txRunner,
		s.integrations.Graph,
		s.tasks,
	)
}

func (s *Services) Workspaces() WorkspaceService {
	return NewWorkspaceService(s.stores.Workspaces(), s.stores.WorkspaceMembers(), s.stores.Users(), s.txRunner)
}

func (s *Services) Invitations() InvitationService {
	return NewInvitationService(
		s.stores.Invitations(),
		s.stores.Workspaces(),
		s.stores.WorkspaceMembers(),
		s.stores.Users(),
		s.txRunner,
		s.tasks,
		s.cfg.AppURL,
		s.cfg.Session.InviteTTL,
	)
}

func (s *Services) Images() ImageService {
	return NewImageService(s.images, s.stores.Users(), s.cfg.Mongo.MaxImageBytes())
}

func (s *Services) Resources() ResourceService {
	return NewResourceService(s.stores.Resources(), s.stores.Users())
}

func (s *Services) CryptoUsers() CryptoUserService {
	return NewCryptoUserService(s.stores.CryptoUsers(), s.txRunner)
}

func (s *Services) Newsletter() NewsletterService {
	return NewNewsletterService(s.stores.BetaSignups())
}

func (s *Services) Chatbot() ChatbotService {
	return NewChatbotService(s.integrations.LLM, s.cfg.Chatbot.MaxTokens)
}

func (s *Services) Discord() DiscordService {
	return NewDiscordService(s.integrations.Discord, s.stores.Users())
}

func (s *Services) DiscordStats() DiscordStatsService {
	return NewDiscordStatsService(s.discordStats)
}

func (s *Services) Pinning() PinningService {
	return NewPinningService(s.integrations.Pinata)
}
