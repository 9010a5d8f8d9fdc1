package media_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gestionimagenes/backend/internal"
	"github.com/gestionimagenes/backend/internal/media"
)

// multipartHeader builds a real FileHeader whose Open() works, by encoding
// and re-parsing a multipart body.
func multipartHeader(filename string, content []byte) *multipart.FileHeader {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	Expect(err).NotTo(HaveOccurred())
	_, err = part.Write(content)
	Expect(err).NotTo(HaveOccurred())
	Expect(writer.Close()).To(Succeed())

	reader := multipart.NewReader(&buf, writer.Boundary())
	form, err := reader.ReadForm(int64(len(content)) + 1024)
	Expect(err).NotTo(HaveOccurred())
	return form.File["file"][0]
}

var _ = Describe("SanitizeFilename", func() {
	It("strips path components", func() {
		Expect(media.SanitizeFilename("../../etc/passwd")).To(Equal("passwd"))
		Expect(media.SanitizeFilename(`C:\temp\photo.png`)).To(Equal("photo.png"))
	})

	It("collapses unsafe characters to underscores", func() {
		Expect(media.SanitizeFilename("foto del piso (1).png")).To(Equal("foto_del_piso_1_.png"))
	})

	It("keeps already-safe names untouched", func() {
		Expect(media.SanitizeFilename("photo_2025-01-01.jpeg")).To(Equal("photo_2025-01-01.jpeg"))
	})

	It("trims leading and trailing dots and underscores", func() {
		Expect(media.SanitizeFilename("..hidden.png")).To(Equal("hidden.png"))
	})
})

var _ = Describe("NewStorageName", func() {
	It("generates distinct names for identical inputs", func() {
		a := media.NewStorageName("photo.png")
		b := media.NewStorageName("photo.png")
		Expect(a).NotTo(Equal(b))
		Expect(a).To(HaveSuffix("_photo.png"))
	})

	It("falls back to a placeholder when sanitizing leaves nothing", func() {
		Expect(media.NewStorageName("...")).To(HaveSuffix("_file"))
	})
})

var _ = Describe("DiskStore", func() {
	var (
		dir   string
		store *media.DiskStore
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		var err error
		store, err = media.NewDiskStore(dir)
		Expect(err).NotTo(HaveOccurred())
	})

	It("saves uploaded bytes under the storage name", func() {
		fh := multipartHeader("photo.png", []byte("fake png bytes"))
		Expect(store.Save(fh, "abc_photo.png")).To(Succeed())

		data, err := os.ReadFile(filepath.Join(dir, "abc_photo.png"))
		Expect(err).NotTo(HaveOccurred())
		Expect(data).To(Equal([]byte("fake png bytes")))
	})

	It("resolves saved names and rejects unknown ones", func() {
		fh := multipartHeader("photo.png", []byte("x"))
		Expect(store.Save(fh, "abc_photo.png")).To(Succeed())

		p, err := store.Path("abc_photo.png")
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(Equal(filepath.Join(dir, "abc_photo.png")))

		_, err = store.Path("missing.png")
		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.StatusCode).To(Equal(http.StatusNotFound))
	})

	It("rejects names that try to escape the upload directory", func() {
		for _, name := range []string{"../secret", "a/b.png", "", strings.Repeat("../", 5) + "etc/passwd"} {
			_, err := store.Path(name)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeFileNotFound))
		}
	})

	It("removes stored files", func() {
		fh := multipartHeader("photo.png", []byte("x"))
		Expect(store.Save(fh, "abc_photo.png")).To(Succeed())
		Expect(store.Remove("abc_photo.png")).To(Succeed())

		_, err := os.Stat(filepath.Join(dir, "abc_photo.png"))
		Expect(os.IsNotExist(err)).To(BeTrue())
	})
})
