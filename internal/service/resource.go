package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"streetnetwork.app/kinship/common/id"
	"streetnetwork.app/kinship/internal/model"
	"streetnetwork.app/kinship/internal/store"
)

var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrInvalidResource  = errors.New("invalid resource")
	ErrInvalidCategory  = errors.New("invalid resource category")
	ErrInvalidStatus    = errors.New("invalid resource status")
	ErrNoURL            = errors.New("no valid URL found in message")
	ErrNoCategory       = errors.New("could not determine an appropriate category")
)

var urlPattern = regexp.MustCompile(`https?://[^\s]+`)

// channel names are matched by substring, message bodies by whole word
var categoryKeywords = []struct {
	category model.ResourceCategory
	channel  string
	content  *regexp.Regexp
}{
	{model.ResourceCategoryAI, "ai", regexp.MustCompile(`\b(ai|artificial intelligence)\b`)},
	{model.ResourceCategoryMemes, "meme", regexp.MustCompile(`\bmemes?\b`)},
	{model.ResourceCategoryDAO, "dao", regexp.MustCompile(`\b(daos?|governance)\b`)},
	{model.ResourceCategoryQuantum, "quantum", regexp.MustCompile(`\bquantum\b`)},
}

type CreateResourceParams struct {
	Title       string
	Description *string
	URL         string
	Category    model.ResourceCategory
	Tags        []string
}

// DiscordResourceMessage is a message the community bot forwards for curation.
type DiscordResourceMessage struct {
	Content     string
	UserID      string
	Username    string
	ServerID    string
	ChannelID   string
	MessageID   string
	ChannelName string
}

type ResourceService interface {
	// List returns matching resources newest first plus every tag in use.
	List(ctx context.Context, filter store.ResourceFilter) ([]model.Resource, []string, error)
	Create(ctx context.Context, submitterID int64, params CreateResourceParams) (*model.Resource, error)
	Like(ctx context.Context, resourceID int64) (*model.Resource, error)
	Moderate(ctx context.Context, resourceID int64, status model.ResourceStatus, notes *string) (*model.Resource, error)
	IngestDiscord(ctx context.Context, msg DiscordResourceMessage) (*model.Resource, error)
}

type resourceService struct {
	resourceStore store.ResourceStore
	userStore     store.UserStore
}

func NewResourceService(resourceStore store.ResourceStore, userStore store.UserStore) ResourceService {
	return &resourceService{
		resourceStore: resourceStore,
		userStore:     userStore,
	}
}

func (s *resourceService) List(ctx context.Context, filter store.ResourceFilter) ([]model.Resource, []string, error) {
	if filter.Category != nil && !filter.Category.IsValid() {
		return nil, nil, ErrInvalidCategory
	}
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, nil, ErrInvalidStatus
	}

	resources, err := s.resourceStore.List(ctx, filter)
	if err != nil {
		return nil, nil, fmt.Errorf("listing resources: %w", err)
	}
	tags, err := s.resourceStore.ListTags(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("listing tags: %w", err)
	}
	return resources, tags, nil
}

func (s *resourceService) Create(ctx context.Context, submitterID int64, params CreateResourceParams) (*model.Resource, error) {
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidResource)
	}
	if !isHTTPURL(params.URL) {
		return nil, fmt.Errorf("%w: url must be an http(s) URL", ErrInvalidResource)
	}
	if !params.Category.IsValid() {
		return nil, ErrInvalidCategory
	}

	resource := &model.Resource{
		ID:          id.New(),
		Title:       title,
		Description: params.Description,
		URL:         params.URL,
		Category:    params.Category,
		Tags:        cleanTags(params.Tags),
		Source:      model.ResourceSourceWeb,
		Status:      model.ResourceStatusPending,
		SubmittedBy: &submitterID,
	}
	if err := s.resourceStore.Create(ctx, resource); err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	slog.InfoContext(ctx, "resource submitted",
		"resource_id", resource.ID,
		"user_id", submitterID,
		"category", resource.Category)
	return resource, nil
}

func (s *resourceService) Like(ctx context.Context, resourceID int64) (*model.Resource, error) {
	resource, err := s.resourceStore.Like(ctx, resourceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, fmt.Errorf("liking resource: %w", err)
	}
	return resource, nil
}

func (s *resourceService) Moderate(ctx context.Context, resourceID int64, status model.ResourceStatus, notes *string) (*model.Resource, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	resource, err := s.resourceStore.UpdateStatus(ctx, resourceID, status, notes)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, fmt.Errorf("updating resource status: %w", err)
	}

	slog.InfoContext(ctx, "resource moderated",
		"resource_id", resourceID,
		"status", status)
	return resource, nil
}

func (s *resourceService) IngestDiscord(ctx context.Context, msg DiscordResourceMessage) (*model.Resource, error) {
	link := ExtractURL(msg.Content)
	if link == "" {
		return nil, ErrNoURL
	}
	category, ok := DetermineCategory(msg.Content, msg.ChannelName)
	if !ok {
		return nil, ErrNoCategory
	}
	if msg.UserID == "" {
		return nil, fmt.Errorf("%w: discord user id is required", ErrInvalidResource)
	}

	submitter, err := s.discordUser(ctx, msg.UserID, msg.Username)
	if err != nil {
		return nil, err
	}

	content := msg.Content
	resource := &model.Resource{
		ID:               id.New(),
		Title:            fmt.Sprintf("Resource shared by %s", msg.Username),
		Description:      &content,
		URL:              link,
		Category:         category,
		Tags:             []string{},
		Source:           model.ResourceSourceDiscord,
		Status:           model.ResourceStatusPending,
		SubmittedBy:      &submitter.ID,
		DiscordMessageID: optional(msg.MessageID),
		DiscordChannelID: optional(msg.ChannelID),
		DiscordServerID:  optional(msg.ServerID),
	}
	if err := s.resourceStore.Create(ctx, resource); err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	slog.InfoContext(ctx, "discord resource ingested",
		"resource_id", resource.ID,
		"user_id", submitter.ID,
		"category", category,
		"channel", msg.ChannelName)
	return resource, nil
}

// discordUser finds the member by Discord id or registers them.
func (s *resourceService) discordUser(ctx context.Context, discordID, username string) (*model.User, error) {
	user, err := s.userStore.GetByDiscordID(ctx, discordID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("getting user by discord id: %w", err)
	}

	name := username
	if name == "" {
		name = "discord-" + discordID
	}
	user = &model.User{
		ID:         id.New(),
		Name:       name,
		FamilyRole: model.FamilyRolePending,
		Discord:    &model.DiscordAccount{ID: discordID, Username: username},
	}
	if err := s.userStore.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return s.userStore.GetByDiscordID(ctx, discordID)
		}
		return nil, fmt.Errorf("creating discord user: %w", err)
	}
	return user, nil
}

// ExtractURL returns the first http(s) URL in content.
func ExtractURL(content string) string {
	return urlPattern.FindString(content)
}

// DetermineCategory picks a category from the channel name first, then
// from the message body.
func DetermineCategory(content, channelName string) (model.ResourceCategory, bool) {
	channel := strings.ToLower(channelName)
	for _, k := range categoryKeywords {
		if strings.Contains(channel, k.channel) {
			return k.category, true
		}
	}
	body := strings.ToLower(content)
	for _, k := range categoryKeywords {
		if k.content.MatchString(body) {
			return k.category, true
		}
	}
	return "", false
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func cleanTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
