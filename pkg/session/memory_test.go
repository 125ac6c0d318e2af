package session_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/casegen/pkg/session"
)

var _ = Describe("MemoryStore", func() {
	var (
		store *session.MemoryStore
		ctx   context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		store = session.NewMemoryStore(time.Hour)
	})

	Describe("GetOrCreate", func() {
		It("creates an empty log for a new session", func() {
			log := store.GetOrCreate(ctx, session.NewID())
			Expect(log).NotTo(BeNil())
			Expect(log.All()).To(BeEmpty())
			Expect(store.Len()).To(Equal(1))
		})

		It("returns the same log for the same id", func() {
			id := session.NewID()
			first := store.GetOrCreate(ctx, id)
			first.Append(session.ChatEntry{Role: session.RoleUser, Text: "hello"})

			second := store.GetOrCreate(ctx, id)
			Expect(second).To(BeIdenticalTo(first))
			Expect(second.All()).To(HaveLen(1))
		})

		It("isolates sessions from each other", func() {
			a := store.GetOrCreate(ctx, session.NewID())
			b := store.GetOrCreate(ctx, session.NewID())
			a.Append(session.ChatEntry{Role: session.RoleUser, Text: "only in a"})

			Expect(b.All()).To(BeEmpty())
			Expect(store.Len()).To(Equal(2))
		})
	})

	Describe("Delete", func() {
		It("ends the session so the same id starts an empty log", func() {
			id := session.NewID()
			old := store.GetOrCreate(ctx, id)
			old.Append(session.ChatEntry{Role: session.RoleUser, Text: "hello"})

			store.Delete(ctx, id)
			Expect(store.Len()).To(Equal(0))

			fresh := store.GetOrCreate(ctx, id)
			Expect(fresh).NotTo(BeIdenticalTo(old))
			Expect(fresh.All()).To(BeEmpty())
		})

		It("leaves other sessions alone", func() {
			keep := store.GetOrCreate(ctx, session.NewID())
			keep.Append(session.ChatEntry{Role: session.RoleUser, Text: "kept"})
			id := session.NewID()
			store.GetOrCreate(ctx, id)

			store.Delete(ctx, id)
			Expect(store.Len()).To(Equal(1))
			Expect(keep.All()).To(HaveLen(1))
		})

		It("ignores unknown ids", func() {
			store.GetOrCreate(ctx, session.NewID())
			store.Delete(ctx, session.NewID())
			Expect(store.Len()).To(Equal(1))
		})
	})

	Describe("expiry", func() {
		It("drops sessions that stay idle past the ttl", func() {
			store = session.NewMemoryStore(50 * time.Millisecond)
			id := session.NewID()
			store.GetOrCreate(ctx, id).Append(session.ChatEntry{Role: session.RoleUser})

			Eventually(store.Len).WithTimeout(time.Second).WithPolling(20 * time.Millisecond).Should(Equal(0))

			Expect(store.GetOrCreate(ctx, id).All()).To(BeEmpty())
		})
	})

	Describe("ids", func() {
		It("generates distinct valid ids", func() {
			a, b := session.NewID(), session.NewID()
			Expect(a).NotTo(Equal(b))
			Expect(session.ValidID(a)).To(BeTrue())
			Expect(session.ValidID("not-a-session")).To(BeFalse())
		})
	})
})
