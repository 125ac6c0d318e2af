package session_test

import (
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/casegen/pkg/session"
)

var _ = Describe("ChatEntry", func() {
	It("labels user entries as You", func() {
		e := session.ChatEntry{Role: session.RoleUser, Text: "hi"}
		Expect(e.Label()).To(Equal("You"))
		Expect(e.ImageIndex()).To(Equal(0))
	})

	It("tags bot entries with the 1-based image index", func() {
		e := session.ChatEntry{Role: session.BotRole(3), Text: "cases"}
		Expect(e.Role).To(Equal("bot-image-3"))
		Expect(e.ImageIndex()).To(Equal(3))
		Expect(e.Label()).To(Equal("Bot (Image 3)"))
	})

	It("falls back to the raw role for unknown labels", func() {
		Expect(session.ChatEntry{Role: "bot-image-x"}.Label()).To(Equal("bot-image-x"))
	})
})

var _ = Describe("Log", func() {
	var log *session.Log

	BeforeEach(func() {
		log = session.NewLog()
	})

	It("starts empty", func() {
		Expect(log.All()).To(BeEmpty())
		Expect(log.Len()).To(Equal(0))
	})

	It("keeps append order", func() {
		log.Append(session.ChatEntry{Role: session.RoleUser, Text: "a"})
		log.Append(
			session.ChatEntry{Role: session.BotRole(1), Text: "b"},
			session.ChatEntry{Role: session.RoleUser, Text: "c"},
		)

		texts := []string{}
		for _, e := range log.All() {
			texts = append(texts, e.Text)
		}
		Expect(texts).To(Equal([]string{"a", "b", "c"}))
	})

	It("returns a copy that callers cannot use to rewrite history", func() {
		log.Append(session.ChatEntry{Role: session.RoleUser, Text: "original"})

		entries := log.All()
		entries[0].Text = "changed"

		Expect(log.All()[0].Text).To(Equal("original"))
	})

	It("keeps pairs appended together adjacent under concurrent writers", func() {
		var wg sync.WaitGroup
		for i := 1; i <= 20; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				log.Append(
					session.ChatEntry{Role: session.RoleUser, Text: "p"},
					session.ChatEntry{Role: session.BotRole(i), Text: "r"},
				)
			}(i)
		}
		wg.Wait()

		entries := log.All()
		Expect(entries).To(HaveLen(40))
		for i := 0; i < len(entries); i += 2 {
			Expect(entries[i].Role).To(Equal(session.RoleUser))
			Expect(entries[i+1].ImageIndex()).To(BeNumerically(">", 0))
		}
	})
})
