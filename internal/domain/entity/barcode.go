package entity

// BarcodeLine asocia un código escaneado con un producto y una cantidad
// sugerida. Un mismo código puede mapear a varias líneas (paquetes, combos);
// se usa solo para prellenar un borrador de traslado.
type BarcodeLine struct {
	Code        string
	ProductID   string
	ProductSKU  string
	ProductName string
	Quantity    int64
}
