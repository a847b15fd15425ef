package invoice

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/slotfleet/maintenance-service/internal/domain"
)

// Data carries everything the invoice layout renders. Client and machine are
// optional; unlinked ledger entries still produce a valid document.
type Data struct {
	Entry   *domain.FinanceEntry
	Client  *domain.User
	Machine *domain.Machine
	Issuer  string
}

// Render produces the PDF bytes for a ledger entry.
func Render(data Data) ([]byte, error) {
	entry := data.Entry
	if entry == nil {
		return nil, fmt.Errorf("invoice: nil entry")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	translator := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, translator(data.Issuer), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, translator(fmt.Sprintf("Factura N° FAC-%06d", entry.ID)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Fecha: "+entry.EntryDate.Format("02/01/2006"), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Emitida: "+time.Now().Format("02/01/2006"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	if data.Client != nil {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 7, "Cliente", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 6, translator(data.Client.Name), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 6, translator(data.Client.Email), "", 1, "L", false, 0, "")
		pdf.Ln(4)
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(120, 8, translator("Concepto"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 8, "Tipo", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 8, "Monto", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	concept := entry.Concept
	if data.Machine != nil {
		concept = fmt.Sprintf("%s (máquina %s)", concept, data.Machine.SerialNumber)
	}
	pdf.CellFormat(120, 8, translator(concept), "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 8, translator(string(entry.Type)), "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 8, fmt.Sprintf("%.2f", entry.Amount), "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(150, 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, fmt.Sprintf("%.2f", entry.Amount), "1", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
