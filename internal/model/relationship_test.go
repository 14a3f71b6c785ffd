package model_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"streetnetwork.app/kinship/internal/model"
)

var _ = Describe("ParseRelationship", func() {
	DescribeTable("maps input onto canonical types",
		func(input string, want model.Relationship) {
			got, err := model.ParseRelationship(input)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(want))
		},
		Entry("parent", "parent", model.RelationshipParent),
		Entry("child", "child", model.RelationshipChild),
		Entry("sibling", "sibling", model.RelationshipSibling),
		Entry("spouse", "spouse", model.RelationshipSpouse),
		Entry("grandparent", "grandparent", model.RelationshipGrandparent),
		Entry("grandchild", "grandchild", model.RelationshipGrandchild),
		Entry("aunt-uncle", "aunt-uncle", model.RelationshipAuntUncle),
		Entry("niece-nephew", "niece-nephew", model.RelationshipNieceNephew),
		Entry("cousin", "cousin", model.RelationshipCousin),
		Entry("other", "other", model.RelationshipOther),
		Entry("mother", "mother", model.RelationshipParent),
		Entry("father", "father", model.RelationshipParent),
		Entry("mom", "mom", model.RelationshipParent),
		Entry("dad", "dad", model.RelationshipParent),
		Entry("son", "son", model.RelationshipChild),
		Entry("daughter", "daughter", model.RelationshipChild),
		Entry("brother", "brother", model.RelationshipSibling),
		Entry("sister", "sister", model.RelationshipSibling),
		Entry("husband", "husband", model.RelationshipSpouse),
		Entry("wife", "wife", model.RelationshipSpouse),
		Entry("partner", "partner", model.RelationshipSpouse),
		Entry("grandmother", "grandmother", model.RelationshipGrandparent),
		Entry("grandfather", "grandfather", model.RelationshipGrandparent),
		Entry("grandson", "grandson", model.RelationshipGrandchild),
		Entry("granddaughter", "granddaughter", model.RelationshipGrandchild),
		Entry("aunt", "aunt", model.RelationshipAuntUncle),
		Entry("uncle", "uncle", model.RelationshipAuntUncle),
		Entry("aunt_uncle", "aunt_uncle", model.RelationshipAuntUncle),
		Entry("niece", "niece", model.RelationshipNieceNephew),
		Entry("nephew", "nephew", model.RelationshipNieceNephew),
		Entry("niece_nephew", "niece_nephew", model.RelationshipNieceNephew),
		Entry("mixed case", "Mother", model.RelationshipParent),
		Entry("upper case canonical", "COUSIN", model.RelationshipCousin),
		Entry("surrounding whitespace", "  sister\t", model.RelationshipSibling),
	)

	DescribeTable("rejects unknown input",
		func(input string) {
			got, err := model.ParseRelationship(input)
			Expect(err).To(MatchError(model.ErrUnknownRelationship))
			Expect(got).To(BeEmpty())
		},
		Entry("empty", ""),
		Entry("blank", "   "),
		Entry("unknown word", "neighbour"),
		Entry("spaced alias", "aunt uncle"),
	)
})

var _ = Describe("Relationship", func() {
	DescribeTable("Inverse",
		func(r, want model.Relationship) {
			Expect(r.IsValid()).To(BeTrue())
			Expect(r.Inverse()).To(Equal(want))
			Expect(r.Inverse().Inverse()).To(Equal(r))
		},
		Entry("parent", model.RelationshipParent, model.RelationshipChild),
		Entry("child", model.RelationshipChild, model.RelationshipParent),
		Entry("sibling", model.RelationshipSibling, model.RelationshipSibling),
		Entry("spouse", model.RelationshipSpouse, model.RelationshipSpouse),
		Entry("grandparent", model.RelationshipGrandparent, model.RelationshipGrandchild),
		Entry("grandchild", model.RelationshipGrandchild, model.RelationshipGrandparent),
		Entry("aunt-uncle", model.RelationshipAuntUncle, model.RelationshipNieceNephew),
		Entry("niece-nephew", model.RelationshipNieceNephew, model.RelationshipAuntUncle),
		Entry("cousin", model.RelationshipCousin, model.RelationshipCousin),
		Entry("other", model.RelationshipOther, model.RelationshipOther),
	)

	It("treats unknown values as other", func() {
		r := model.Relationship("stranger")
		Expect(r.IsValid()).To(BeFalse())
		Expect(r.Inverse()).To(Equal(model.RelationshipOther))
	})
})
