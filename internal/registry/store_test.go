package registry

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"cpu-scheduler-sim/internal/core"
)

var _ = Describe("CSV codec", func() {
	It("reads rows with and without a priority column", func() {
		processes, err := ReadProcesses(strings.NewReader("id,arrival,burst,priority\nA, 0, 4, 2\nB,1,3\n"))
		Expect(err).Should(BeNil())
		Expect(processes).To(Equal([]core.Process{
			{ID: "A", Arrival: 0, Burst: 4, Priority: 2},
			{ID: "B", Arrival: 1, Burst: 3},
		}))
	})

	It("rejects malformed rows", func() {
		for _, input := range []string{"A,0\n", "A,x,3\n", "A,0,3,high\n", "A,0,3,1,9\n"} {
			_, err := ReadProcesses(strings.NewReader(input))
			Expect(err).Should(MatchError(core.ErrInvalidInput), input)
		}
	})

	It("writes what it reads, preserving order", func() {
		processes := []core.Process{
			{ID: "Z", Arrival: 5, Burst: 1, Priority: 3},
			{ID: "A", Arrival: 0, Burst: 2},
		}
		var buf bytes.Buffer
		Expect(WriteProcesses(&buf, processes)).Should(BeNil())
		Expect(buf.String()).To(Equal("id,arrival,burst,priority\nZ,5,1,3\nA,0,2,0\n"))

		read, err := ReadProcesses(&buf)
		Expect(err).Should(BeNil())
		Expect(read).To(Equal(processes))
	})
})

var _ = Describe("FileStore", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = ioutil.TempDir("", "schedsim-store")
		Expect(err).Should(BeNil())
	})

	AfterEach(func() {
		os.RemoveAll(dir)
	})

	It("loads a missing file as an empty list", func() {
		processes, err := NewFileStore(filepath.Join(dir, "missing.csv")).Load()
		Expect(err).Should(BeNil())
		Expect(processes).To(BeEmpty())
	})

	It("saves and loads the process list", func() {
		store := NewFileStore(filepath.Join(dir, "processes.csv"))
		processes := []core.Process{{ID: "A", Arrival: 0, Burst: 4}, {ID: "B", Arrival: 1, Burst: 3, Priority: 1}}
		Expect(store.Save(processes)).Should(BeNil())
		Expect(store.Save(processes)).Should(BeNil())

		loaded, err := store.Load()
		Expect(err).Should(BeNil())
		Expect(loaded).To(Equal(processes))

		entries, err := ioutil.ReadDir(dir)
		Expect(err).Should(BeNil())
		Expect(entries).To(HaveLen(1))
	})

	It("reports a corrupt file", func() {
		path := filepath.Join(dir, "processes.csv")
		Expect(ioutil.WriteFile(path, []byte("A,zero,1\n"), 0644)).Should(BeNil())
		_, err := NewFileStore(path).Load()
		Expect(err).Should(MatchError(core.ErrInvalidInput))
	})
})
