package registry

import (
	"strconv"
	"sync"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"cpu-scheduler-sim/internal/core"
)

var _ = Describe("Registry", func() {
	var r *Registry

	BeforeEach(func() {
		r = NewRegistry()
	})

	It("keeps insertion order", func() {
		Expect(r.Add(core.Process{ID: "B", Arrival: 2, Burst: 1})).Should(BeNil())
		Expect(r.Add(core.Process{ID: "A", Arrival: 0, Burst: 3})).Should(BeNil())
		Expect(r.List()).To(Equal([]core.Process{
			{ID: "B", Arrival: 2, Burst: 1},
			{ID: "A", Arrival: 0, Burst: 3},
		}))
		Expect(r.Len()).To(Equal(2))
	})

	It("rejects duplicate ids and invalid processes", func() {
		Expect(r.Add(core.Process{ID: "A", Burst: 1})).Should(BeNil())
		Expect(r.Add(core.Process{ID: "A", Burst: 2})).Should(MatchError(ErrDuplicateProcess))
		Expect(r.Add(core.Process{ID: "B", Burst: 0})).Should(MatchError(core.ErrInvalidInput))
		Expect(r.Len()).To(Equal(1))
	})

	It("removes by id", func() {
		Expect(r.Add(core.Process{ID: "A", Burst: 1})).Should(BeNil())
		Expect(r.Add(core.Process{ID: "B", Burst: 1})).Should(BeNil())
		Expect(r.Remove("A")).Should(BeNil())
		Expect(r.Remove("A")).Should(MatchError(ErrProcessNotFound))

		_, ok := r.Get("A")
		Expect(ok).To(BeFalse())
		p, ok := r.Get("B")
		Expect(ok).To(BeTrue())
		Expect(p.ID).To(Equal("B"))
	})

	It("hands out copies", func() {
		Expect(r.Add(core.Process{ID: "A", Burst: 1})).Should(BeNil())
		list := r.List()
		list[0].Burst = 42
		p, _ := r.Get("A")
		Expect(p.Burst).To(Equal(1))
	})

	It("replaces atomically and refuses invalid lists", func() {
		Expect(r.Add(core.Process{ID: "A", Burst: 1})).Should(BeNil())
		err := r.Replace([]core.Process{{ID: "X", Burst: 1}, {ID: "X", Burst: 2}})
		Expect(err).Should(MatchError(core.ErrInvalidInput))
		Expect(r.List()).To(Equal([]core.Process{{ID: "A", Burst: 1}}))

		Expect(r.Replace(nil)).Should(BeNil())
		Expect(r.Len()).To(Equal(0))
	})

	It("is safe for concurrent adds", func() {
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				defer GinkgoRecover()
				Expect(r.Add(core.Process{ID: "P" + strconv.Itoa(i), Burst: 1})).Should(BeNil())
			}(i)
		}
		wg.Wait()
		Expect(r.Len()).To(Equal(50))
	})
})
