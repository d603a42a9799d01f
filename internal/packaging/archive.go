// Package packaging monta o pacote de código enviado à Lambda.
package packaging

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/flate"
)

// EntryName é o nome fixo da entrada dentro do zip. O handler configurado na
// função ("lambda_function.lambda_handler") resolve contra esse nome.
const EntryName = "lambda_function.py"

// Archive lê o arquivo em path e devolve um zip em memória com o conteúdo
// sob o nome fixo EntryName.
func Archive(path string) ([]byte, error) {
	src, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening handler file: %w", err)
	}
	defer src.Close()

	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.BestCompression)
	})

	entry, err := zw.Create(EntryName)
	if err != nil {
		return nil, fmt.Errorf("creating zip entry: %w", err)
	}
	if _, err := io.Copy(entry, src); err != nil {
		return nil, fmt.Errorf("writing zip entry: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalizing zip: %w", err)
	}
	return buf.Bytes(), nil
}
