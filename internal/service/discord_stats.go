package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode"

	"streetnetwork.app/kinship/internal/model"
	"streetnetwork.app/kinship/internal/store"
)

var (
	ErrDiscordMemberNotFound = errors.New("discord member not found")
	ErrMissingDiscordUser    = errors.New("discord user id is required")
)

const unknownChannel = "Unknown Channel"

// DiscordStatsService reports community activity gathered by the Discord bot.
type DiscordStatsService interface {
	Members(ctx context.Context) ([]model.DiscordMember, error)
	// MemberStats resolves an empty discordUserID to the caller's linked account.
	MemberStats(ctx context.Context, actor *model.User, discordUserID string) (*model.DiscordMemberStats, error)
	GlobalStats(ctx context.Context) (*model.DiscordGlobalStats, error)
	ChannelBreakdown(ctx context.Context) (*model.DiscordChannelBreakdown, error)
}

type discordStatsService struct {
	stats store.DiscordStatsStore
}

func NewDiscordStatsService(stats store.DiscordStatsStore) DiscordStatsService {
	return &discordStatsService{stats: stats}
}

func (s *discordStatsService) Members(ctx context.Context) ([]model.DiscordMember, error) {
	if s.stats == nil {
		return nil, fmt.Errorf("discord stats %w", ErrNotConfigured)
	}
	return s.stats.ListMembers(ctx)
}

func (s *discordStatsService) MemberStats(ctx context.Context, actor *model.User, discordUserID string) (*model.DiscordMemberStats, error) {
	if s.stats == nil {
		return nil, fmt.Errorf("discord stats %w", ErrNotConfigured)
	}
	discordUserID = strings.TrimSpace(discordUserID)
	if discordUserID == "" && actor != nil && actor.Discord != nil {
		discordUserID = actor.Discord.ID
	}
	if discordUserID == "" {
		return nil, ErrMissingDiscordUser
	}

	stats, err := s.stats.GetMember(ctx, discordUserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrDiscordMemberNotFound
		}
		return nil, err
	}
	return stats, nil
}

func (s *discordStatsService) GlobalStats(ctx context.Context) (*model.DiscordGlobalStats, error) {
	if s.stats == nil {
		return nil, fmt.Errorf("discord stats %w", ErrNotConfigured)
	}

	totals, err := s.stats.Totals(ctx)
	if err != nil {
		return nil, err
	}
	activity, err := s.stats.ChannelActivity(ctx)
	if err != nil {
		return nil, err
	}

	global := &model.DiscordGlobalStats{
		TotalInteractions: totals.TotalInteractions,
		FirstInteraction:  totals.FirstInteraction,
		ActiveChannels:    []string{},
		ChannelStats:      make(map[string]int64, len(activity)),
	}
	for _, ch := range activity {
		if ch.ChannelID != "" {
			global.ActiveChannels = append(global.ActiveChannels, ch.ChannelID)
		}
		key := ch.ChannelName
		if key == "" {
			key = ch.ChannelID
		}
		global.ChannelStats[key] += ch.TotalInteractions
	}
	return global, nil
}

func (s *discordStatsService) ChannelBreakdown(ctx context.Context) (*model.DiscordChannelBreakdown, error) {
	if s.stats == nil {
		return nil, fmt.Errorf("discord stats %w", ErrNotConfigured)
	}

	activity, err := s.stats.ChannelActivity(ctx)
	if err != nil {
		return nil, err
	}

	breakdown := &model.DiscordChannelBreakdown{Channels: make([]model.DiscordChannelActivity, len(activity))}
	for _, ch := range activity {
		breakdown.TotalInteractions += ch.TotalInteractions
	}
	for i, ch := range activity {
		breakdown.Channels[i] = model.DiscordChannelActivity{
			ChannelID:         ch.ChannelID,
			Name:              CleanChannelName(ch.ChannelName),
			TotalInteractions: ch.TotalInteractions,
			UniqueUsers:       ch.UniqueUsers,
			Percentage:        percentage(ch.TotalInteractions, breakdown.TotalInteractions),
		}
	}
	return breakdown, nil
}

// CleanChannelName strips the emoji and dashes Discord channels are decorated
// with, falling back to a placeholder when nothing readable remains.
func CleanChannelName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r == '-':
			return ' '
		case unicode.Is(unicode.So, r), unicode.Is(unicode.Sk, r), unicode.Is(unicode.Mn, r),
			unicode.Is(unicode.Cf, r), unicode.Is(unicode.Co, r):
			return -1
		}
		return r
	}, name)
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	if cleaned == "" {
		return unknownChannel
	}
	return cleaned
}

// percentage of part in whole, rounded to one decimal.
func percentage(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	return math.Round(float64(part)*1000/float64(whole)) / 10
}
