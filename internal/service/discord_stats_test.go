package service_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"streetnetwork.app/kinship/internal/model"
	"streetnetwork.app/kinship/internal/service"
	"streetnetwork.app/kinship/internal/store"
)

var _ = Describe("DiscordStatsService", func() {
	var (
		ctx   context.Context
		stats *mockDiscordStatsStore
		svc   service.DiscordStatsService
	)

	BeforeEach(func() {
		ctx = context.Background()
		stats = &mockDiscordStatsStore{
			byID: map[string]*model.DiscordMemberStats{
				"8123": {DiscordMember: model.DiscordMember{UserID: "8123", Username: "ada", TotalInteractions: 4}},
			},
			activity: []store.ChannelActivity{
				{ChannelID: "c1", ChannelName: "📚-study-hall", TotalInteractions: 3, UniqueUsers: 2},
				{ChannelID: "c2", ChannelName: "", TotalInteractions: 1, UniqueUsers: 1},
			},
		}
		svc = service.NewDiscordStatsService(stats)
	})

	Describe("MemberStats", func() {
		It("looks up the requested member", func() {
			got, err := svc.MemberStats(ctx, nil, " 8123 ")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Username).To(Equal("ada"))
		})

		It("falls back to the caller's linked discord account", func() {
			actor := &model.User{ID: 7, Discord: &model.DiscordAccount{ID: "8123"}}
			got, err := svc.MemberStats(ctx, actor, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.UserID).To(Equal("8123"))
		})

		It("requires a discord user id", func() {
			_, err := svc.MemberStats(ctx, &model.User{ID: 7}, "")
			Expect(err).To(MatchError(service.ErrMissingDiscordUser))
		})

		It("reports unknown members", func() {
			_, err := svc.MemberStats(ctx, nil, "404")
			Expect(err).To(MatchError(service.ErrDiscordMemberNotFound))
		})
	})

	It("aggregates global stats by channel", func() {
		first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		stats.totals = store.DiscordTotals{TotalInteractions: 4, FirstInteraction: &first}

		global, err := svc.GlobalStats(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(global.TotalInteractions).To(Equal(int64(4)))
		Expect(global.FirstInteraction).To(HaveValue(Equal(first)))
		Expect(global.ActiveChannels).To(Equal([]string{"c1", "c2"}))
		Expect(global.ChannelStats).To(Equal(map[string]int64{"📚-study-hall": 3, "c2": 1}))
	})

	It("breaks activity down by channel with cleaned names and shares", func() {
		breakdown, err := svc.ChannelBreakdown(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(breakdown.TotalInteractions).To(Equal(int64(4)))
		Expect(breakdown.Channels).To(HaveLen(2))
		Expect(breakdown.Channels[0].Name).To(Equal("study hall"))
		Expect(breakdown.Channels[0].Percentage).To(Equal(75.0))
		Expect(breakdown.Channels[1].Name).To(Equal("Unknown Channel"))
		Expect(breakdown.Channels[1].Percentage).To(Equal(25.0))
	})

	It("answers an empty breakdown without dividing by zero", func() {
		stats.activity = nil
		breakdown, err := svc.ChannelBreakdown(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(breakdown.TotalInteractions).To(BeZero())
		Expect(breakdown.Channels).To(BeEmpty())
	})

	It("passes store failures through", func() {
		stats.err = errors.New("mongo down")
		_, err := svc.Members(ctx)
		Expect(err).To(MatchError("mongo down"))
	})

	It("reports not configured without a store", func() {
		_, err := service.NewDiscordStatsService(nil).Members(ctx)
		Expect(errors.Is(err, service.ErrNotConfigured)).To(BeTrue())
	})

	DescribeTable("CleanChannelName",
		func(in, want string) {
			Expect(service.CleanChannelName(in)).To(Equal(want))
		},
		Entry("plain", "general", "general"),
		Entry("emoji prefix", "📚-resources", "resources"),
		Entry("emoji with variation selector", "🛠️-tools", "tools"),
		Entry("dashes", "family-tree-help", "family tree help"),
		Entry("empty", "", "Unknown Channel"),
		Entry("only decoration", "📝-", "Unknown Channel"),
	)
})
