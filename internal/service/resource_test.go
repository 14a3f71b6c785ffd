package service_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"streetnetwork.app/kinship/common/id"
	"streetnetwork.app/kinship/internal/model"
	"streetnetwork.app/kinship/internal/service"
	"streetnetwork.app/kinship/internal/store"
)

var _ = Describe("ResourceService", func() {
	var (
		ctx       context.Context
		resources *mockResourceStore
		users     *mockUserStore
		svc       service.ResourceService
	)

	BeforeEach(func() {
		ctx = context.Background()
		Expect(id.Init(1)).To(Succeed())
		resources = &mockResourceStore{}
		users = &mockUserStore{}
		svc = service.NewResourceService(resources, users)
	})

	Describe("Create", func() {
		It("stores a pending web submission with cleaned tags", func() {
			r, err := svc.Create(ctx, 7, service.CreateResourceParams{
				Title:    " Intro to DAOs ",
				URL:      "https://example.com/daos",
				Category: model.ResourceCategoryDAO,
				Tags:     []string{"governance", " ", "governance", "web3"},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(r.Title).To(Equal("Intro to DAOs"))
			Expect(r.Status).To(Equal(model.ResourceStatusPending))
			Expect(r.Source).To(Equal(model.ResourceSourceWeb))
			Expect(r.Tags).To(Equal([]string{"governance", "web3"}))
			Expect(*r.SubmittedBy).To(Equal(int64(7)))
			Expect(resources.created).To(HaveLen(1))
		})

		DescribeTable("validates input",
			func(params service.CreateResourceParams, expected error) {
				_, err := svc.Create(ctx, 7, params)
				Expect(err).To(MatchError(expected))
				Expect(resources.created).To(BeEmpty())
			},
			Entry("missing title", service.CreateResourceParams{URL: "https://x.io", Category: model.ResourceCategoryAI}, service.ErrInvalidResource),
			Entry("non-http url", service.CreateResourceParams{Title: "t", URL: "ftp://x.io", Category: model.ResourceCategoryAI}, service.ErrInvalidResource),
			Entry("unknown category", service.CreateResourceParams{Title: "t", URL: "https://x.io", Category: "Cooking"}, service.ErrInvalidCategory),
		)
	})

	Describe("List", func() {
		It("returns resources with every tag", func() {
			resources.listFn = func(_ context.Context, f store.ResourceFilter) ([]model.Resource, error) {
				Expect(*f.Category).To(Equal(model.ResourceCategoryAI))
				return []model.Resource{{ID: 1}}, nil
			}
			resources.listTagsFn = func(context.Context) ([]string, error) {
				return []string{"llm"}, nil
			}
			category := model.ResourceCategoryAI
			list, tags, err := svc.List(ctx, store.ResourceFilter{Category: &category})
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(1))
			Expect(tags).To(ConsistOf("llm"))
		})

		It("rejects unknown statuses", func() {
			status := model.ResourceStatus("archived")
			_, _, err := svc.List(ctx, store.ResourceFilter{Status: &status})
			Expect(err).To(MatchError(service.ErrInvalidStatus))
		})
	})

	Describe("Moderate", func() {
		It("maps missing resources", func() {
			_, err := svc.Moderate(ctx, 1, model.ResourceStatusApproved, nil)
			Expect(err).To(MatchError(service.ErrResourceNotFound))
		})

		It("rejects unknown statuses", func() {
			_, err := svc.Moderate(ctx, 1, "archived", nil)
			Expect(err).To(MatchError(service.ErrInvalidStatus))
		})
	})

	Describe("IngestDiscord", func() {
		msg := service.DiscordResourceMessage{
			Content:     "check this out https://example.com/paper.pdf about quantum error correction",
			UserID:      "123456",
			Username:    "qubit",
			ServerID:    "s1",
			ChannelID:   "c1",
			MessageID:   "m1",
			ChannelName: "general",
		}

		It("registers unknown Discord users and stores a pending resource", func() {
			r, err := svc.IngestDiscord(ctx, msg)
			Expect(err).NotTo(HaveOccurred())
			Expect(r.URL).To(Equal("https://example.com/paper.pdf"))
			Expect(r.Category).To(Equal(model.ResourceCategoryQuantum))
			Expect(r.Title).To(Equal("Resource shared by qubit"))
			Expect(r.Source).To(Equal(model.ResourceSourceDiscord))
			Expect(*r.DiscordMessageID).To(Equal("m1"))
			Expect(users.createCalls).To(Equal(1))
		})

		It("reuses the linked user", func() {
			users.getByDiscordIDFn = func(context.Context, string) (*model.User, error) {
				return &model.User{ID: 42}, nil
			}
			r, err := svc.IngestDiscord(ctx, msg)
			Expect(err).NotTo(HaveOccurred())
			Expect(*r.SubmittedBy).To(Equal(int64(42)))
			Expect(users.createCalls).To(BeZero())
		})

		It("requires a URL", func() {
			m := msg
			m.Content = "quantum is neat"
			_, err := svc.IngestDiscord(ctx, m)
			Expect(err).To(MatchError(service.ErrNoURL))
		})

		It("requires a category", func() {
			m := msg
			m.Content = "https://example.com nothing to see"
			_, err := svc.IngestDiscord(ctx, m)
			Expect(err).To(MatchError(service.ErrNoCategory))
		})
	})

	DescribeTable("DetermineCategory",
		func(content, channel string, expected model.ResourceCategory, ok bool) {
			got, found := service.DetermineCategory(content, channel)
			Expect(found).To(Equal(ok))
			Expect(got).To(Equal(expected))
		},
		Entry("channel wins", "about quantum", "ai-news", model.ResourceCategoryAI, true),
		Entry("meme channel", "", "dank-memes", model.ResourceCategoryMemes, true),
		Entry("content keyword", "new DAO governance proposal", "general", model.ResourceCategoryDAO, true),
		Entry("phrase", "Artificial Intelligence primer", "general", model.ResourceCategoryAI, true),
		Entry("no substring matches in content", "she said it was fine", "general", model.ResourceCategory(""), false),
	)
})
