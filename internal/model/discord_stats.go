package model

import "time"

// DiscordMember is one row of the community leaderboard kept by the Discord bot.
type DiscordMember struct {
	UserID            string     `json:"user_id"`
	Username          string     `json:"username"`
	Avatar            string     `json:"avatar,omitempty"`
	TotalInteractions int64      `json:"total_interactions"`
	LastActive        *time.Time `json:"last_active,omitempty"`
}

type DiscordInteraction struct {
	Type        string     `json:"type"`
	Timestamp   *time.Time `json:"timestamp,omitempty"`
	ChannelID   string     `json:"channel_id"`
	ChannelName string     `json:"channel_name"`
	GuildID     string     `json:"guild_id"`
	GuildName   string     `json:"guild_name"`
	Command     *string    `json:"command"`
	Message     string     `json:"message"`
}

type DiscordMemberDetails struct {
	LastChannel       string     `json:"last_channel"`
	LastGuild         string     `json:"last_guild"`
	LastInteraction   *time.Time `json:"last_interaction,omitempty"`
	LastMessage       string     `json:"last_message"`
	TotalInteractions int64      `json:"total_interactions"`
	Username          string     `json:"username"`
}

// DiscordMemberStats is the full activity record for one Discord user.
type DiscordMemberStats struct {
	DiscordMember
	FirstInteraction *time.Time            `json:"first_interaction,omitempty"`
	Interactions     []DiscordInteraction  `json:"interactions"`
	Details          *DiscordMemberDetails `json:"details,omitempty"`
}

// DiscordChannelActivity counts interactions per channel across all members.
type DiscordChannelActivity struct {
	ChannelID         string  `json:"channel_id"`
	Name              string  `json:"name"`
	TotalInteractions int64   `json:"total_interactions"`
	UniqueUsers       int64   `json:"unique_users"`
	Percentage        float64 `json:"percentage"`
}

type DiscordChannelBreakdown struct {
	TotalInteractions int64                    `json:"total_interactions"`
	Channels          []DiscordChannelActivity `json:"channels"`
}

type DiscordGlobalStats struct {
	TotalInteractions int64            `json:"total_interactions"`
	ActiveChannels    []string         `json:"active_channels"`
	FirstInteraction  *time.Time       `json:"first_interaction,omitempty"`
	ChannelStats      map[string]int64 `json:"channel_stats"`
}
