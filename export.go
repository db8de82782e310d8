package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// exportOrdersCSV writes the currently visible orders as a flat CSV, one line
// per item so multi-item orders export completely. The file goes next to the
// rest of the local state; order data still never persists beyond this
// explicit export.
func exportOrdersCSV(path string, orders []Order) error {
	if len(orders) == 0 {
		return errors.New("no hay pedidos para exportar")
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{
		"Fecha", "Cliente", "Email", "Teléfono",
		"Diseño", "Tipo", "Fabricación", "Venta", "Despacho",
		"Valor", "Seña", "Envío", "Tracking",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, order := range orders {
		for _, item := range order.Items {
			record := []string{
				order.OrderDate.Format("02/01/2006"),
				order.Customer.FullName(),
				order.Customer.Email,
				order.Customer.PhoneE164,
				item.DesignName,
				string(item.StampType),
				string(item.FabricationState),
				string(item.SaleState),
				string(item.ShippingState),
				strconv.FormatFloat(item.ItemValue, 'f', 2, 64),
				strconv.FormatFloat(item.DepositValue, 'f', 2, 64),
				carrierLabel(order.Shipping.Carrier),
				order.Shipping.TrackingNumber,
			}
			if err := writer.Write(record); err != nil {
				return err
			}
		}
	}
	return writer.Error()
}

func defaultExportPath(now time.Time) string {
	name := fmt.Sprintf("pedidos-%s.csv", now.Format("20060102-150405"))
	return filepath.Join(resolveConfigDir(), name)
}
