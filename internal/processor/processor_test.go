package processor_test

import (
	"bytes"
	"context"
	"errors"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/matcalc/internal/matrix"
	"github.com/san-kum/matcalc/internal/processor"
)

type saved struct {
	op     string
	inputs int
	scalar *int
	result *matrix.Matrix
	value  *float64
}

type fakeRecorder struct {
	saved []saved
	err   error
}

func (f *fakeRecorder) Save(op string, inputs []*matrix.Matrix, scalar *int, result *matrix.Matrix) (string, error) {
	f.saved = append(f.saved, saved{op: op, inputs: len(inputs), scalar: scalar, result: result})
	return "id", f.err
}

func (f *fakeRecorder) SaveValue(op string, inputs []*matrix.Matrix, value float64) (string, error) {
	f.saved = append(f.saved, saved{op: op, inputs: len(inputs), value: &value})
	return "id", f.err
}

func lines(ls ...string) string {
	return strings.Join(ls, "\n") + "\n"
}

var _ = Describe("Processor", func() {
	var (
		out bytes.Buffer
		rec *fakeRecorder
	)

	run := func(input string, opts ...processor.Option) error {
		opts = append([]processor.Option{processor.WithRecorder(rec)}, opts...)
		return processor.New(strings.NewReader(input), &out, opts...).Run(context.Background())
	}

	BeforeEach(func() {
		out.Reset()
		rec = &fakeRecorder{}
	})

	It("prints the menu and exits on 0", func() {
		Expect(run("0\n")).To(Succeed())
		Expect(out.String()).To(ContainSubstring("1. Add matrices"))
		Expect(out.String()).To(ContainSubstring("6. Inverse matrix"))
		Expect(out.String()).To(HaveSuffix("Your choice: "))
	})

	It("ends quietly when input runs out", func() {
		Expect(run("")).To(Succeed())
		Expect(run("1\n2 2\n1 2\n")).To(Succeed())
	})

	It("adds two matrices", func() {
		Expect(run(lines("1", "2 2", "1 1", "1 1", "2 2", "2 2", "2 2", "0"))).To(Succeed())
		Expect(out.String()).To(ContainSubstring("Enter size of first matrix: Enter first matrix:"))
		Expect(out.String()).To(ContainSubstring("Enter size of second matrix: Enter second matrix:"))
		Expect(out.String()).To(ContainSubstring("The result is:\n3.0 3.0\n3.0 3.0\n"))

		Expect(rec.saved).To(HaveLen(1))
		Expect(rec.saved[0].op).To(Equal("add"))
		Expect(rec.saved[0].inputs).To(Equal(2))
	})

	It("scales by a constant", func() {
		Expect(run(lines("2", "2 2", "1 2", "3 4", "2", "0"))).To(Succeed())
		Expect(out.String()).To(ContainSubstring("Enter constant: The result is:\n2.0 4.0\n6.0 8.0\n"))

		Expect(rec.saved).To(HaveLen(1))
		Expect(*rec.saved[0].scalar).To(Equal(2))
	})

	It("multiplies matrices", func() {
		Expect(run(lines("3", "2 3", "1 2 3", "4 5 6", "3 2", "7 8", "9 10", "11 12", "0"))).To(Succeed())
		Expect(out.String()).To(ContainSubstring("The result is:\n58.0 64.0\n139.0 154.0\n"))
	})

	DescribeTable("transposes",
		func(kind, want string) {
			Expect(run(lines("4", kind, "3 3", "1 2 3", "4 5 6", "7 8 9", "0"))).To(Succeed())
			Expect(out.String()).To(ContainSubstring("1. Main diagonal"))
			Expect(out.String()).To(ContainSubstring("The result is:\n" + want + "\n"))
		},
		Entry("main diagonal", "1", "1.0 4.0 7.0\n2.0 5.0 8.0\n3.0 6.0 9.0"),
		Entry("side diagonal", "2", "9.0 6.0 3.0\n8.0 5.0 2.0\n7.0 4.0 1.0"),
		Entry("vertical line", "3", "3.0 2.0 1.0\n6.0 5.0 4.0\n9.0 8.0 7.0"),
		Entry("horizontal line", "4", "7.0 8.0 9.0\n4.0 5.0 6.0\n1.0 2.0 3.0"),
	)

	It("rejects an unknown transpose kind without reading a matrix", func() {
		Expect(run(lines("4", "9", "0"))).To(Succeed())
		Expect(out.String()).To(ContainSubstring("Not a valid choice!"))
		Expect(out.String()).NotTo(ContainSubstring("Enter size of matrix"))
	})

	It("calculates a determinant", func() {
		Expect(run(lines("5", "2 2", "1 2", "3 4", "0"))).To(Succeed())
		Expect(out.String()).To(ContainSubstring("The result is:\n-2.0\n"))

		Expect(rec.saved).To(HaveLen(1))
		Expect(rec.saved[0].op).To(Equal("determinant"))
		Expect(*rec.saved[0].value).To(Equal(-2.0))
	})

	It("inverts a matrix", func() {
		Expect(run(lines("6", "2 2", "1 2", "3 4", "0"))).To(Succeed())
		Expect(out.String()).To(ContainSubstring("The result is:\n-2.0 1.0\n1.5 -0.5\n"))
	})

	It("reports a singular matrix and keeps going", func() {
		Expect(run(lines("6", "2 2", "1 2", "2 4", "5", "1 1", "7", "0"))).To(Succeed())
		Expect(out.String()).To(ContainSubstring("This matrix doesn't have an inverse."))
		Expect(out.String()).To(ContainSubstring("The result is:\n7.0\n"))
	})

	It("reports shape errors and keeps going", func() {
		Expect(run(lines("1", "2 2", "1 2", "3 4", "3 3", "1 2 3", "4 5 6", "7 8 9", "3", "2 3", "1 2 3", "4 5 6", "2 2", "1 2", "3 4", "0"))).To(Succeed())
		Expect(strings.Count(out.String(), "The operation cannot be performed.")).To(Equal(2))
		Expect(strings.Count(out.String(), "Your choice: ")).To(Equal(3))
		Expect(rec.saved).To(BeEmpty())
	})

	It("reports an unknown menu item", func() {
		Expect(run(lines("9", "x", "0"))).To(Succeed())
		Expect(strings.Count(out.String(), "Not a valid choice!")).To(Equal(2))
	})

	It("reports malformed numbers", func() {
		Expect(run(lines("5", "1 1", "abc", "0"))).To(Succeed())
		Expect(out.String()).To(ContainSubstring("Invalid input:"))
	})

	It("keeps printing results when the recorder fails", func() {
		rec.err = errors.New("disk full")
		Expect(run(lines("5", "1 1", "4", "0"))).To(Succeed())
		Expect(out.String()).To(ContainSubstring("The result is:\n4.0\n"))
	})

	It("uses a custom renderer", func() {
		render := func(m *matrix.Matrix) string { return "<matrix>" }
		Expect(run(lines("2", "1 1", "5", "3", "0"), processor.WithRenderer(render))).To(Succeed())
		Expect(out.String()).To(ContainSubstring("The result is:\n<matrix>\n"))
	})

	It("stops when the context is canceled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := processor.New(strings.NewReader("0\n"), &out).Run(ctx)
		Expect(err).To(MatchError(context.Canceled))
	})
})

var _ = Describe("Message", func() {
	It("maps core errors to user text", func() {
		Expect(processor.Message(matrix.ErrShape)).To(Equal("The operation cannot be performed."))
		Expect(processor.Message(matrix.ErrSingular)).To(Equal("This matrix doesn't have an inverse."))
		Expect(processor.Message(matrix.ErrInvalidChoice)).To(Equal("Not a valid choice!"))
		Expect(processor.Message(matrix.ErrParse)).To(HavePrefix("Invalid input:"))
	})
})
