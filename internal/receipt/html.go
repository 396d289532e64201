package receipt

import (
	"fmt"
	"strings"
)

// GenerateReceiptHTML génère le HTML imprimable du reçu de caisse
func GenerateReceiptHTML(r *Receipt) string {
	var itemsHTML strings.Builder
	for _, item := range r.Items {
		itemsHTML.WriteString(fmt.Sprintf(`
			<tr>
				<td>%s</td>
				<td>%d</td>
				<td>%.2f</td>
				<td>%.2f</td>
			</tr>`, item.ProductID, item.Quantity, item.UnitPrice, item.TotalPrice))
	}

	paymentLine := "Mobile Money"
	if r.PaymentMethod == "cash" {
		paymentLine = fmt.Sprintf("Cash — reçu %.2f, rendu %.2f", r.CashReceived, r.Change)
	} else if r.Reference != "" {
		paymentLine = fmt.Sprintf("Mobile Money — réf. %s", r.Reference)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<title>Reçu %s</title>
</head>
<body style="font-family: 'Courier New', monospace; max-width: 320px; margin: auto; padding: 10px;">
	<h2 style="text-align: center; margin-bottom: 4px;">Vendra POS</h2>
	<p style="text-align: center; margin: 0;">Reçu n° %s</p>
	<p style="text-align: center; margin: 0;">%s</p>
	<p>Client : %s</p>
	<table style="width: 100%%; border-collapse: collapse; margin: 10px 0;">
		<thead>
			<tr style="border-bottom: 1px dashed #000;">
				<th style="text-align: left;">Article</th>
				<th>Qté</th>
				<th>P.U.</th>
				<th>Total</th>
			</tr>
		</thead>
		<tbody>%s</tbody>
	</table>
	<p style="margin: 2px 0;">Sous-total : %.2f</p>
	<p style="margin: 2px 0;">TVA (12.5%%) : %.2f</p>
	<p style="margin: 2px 0; font-weight: bold;">TOTAL : %.2f</p>
	<p style="margin: 8px 0;">Paiement : %s</p>
	<div style="text-align: center; margin-top: 12px;">
		<img src="%s" alt="QR" width="128" height="128" />
	</div>
	<p style="text-align: center; margin-top: 8px;">Merci de votre visite !</p>
</body>
</html>`, r.RefCode, r.RefCode, r.OrderDate, r.CustomerName, itemsHTML.String(),
		r.Subtotal, r.Tax, r.Total, paymentLine, r.QRCode)
}
