package services

// UOMOptions returns the list of Unit of Measurement options.
var UOMOptions = []string{
	"cu.m",
	"sq.m",
	"l.m",
	"kg",
	"MT",
	"pcs",
	"bags",
	"sheets",
	"set",
	"lot",
	"lumpsum",
	"ltr",
	"trip",
	"day",
	"hour",
}

// ElementTypeOptions returns the supported structural element types.
var ElementTypeOptions = []string{
	string(ElementBeam),
	string(ElementColumn),
	string(ElementSlab),
	string(ElementFoundation),
}

// RoofStyleOptions returns the supported parametric roof styles.
var RoofStyleOptions = []string{
	string(RoofGable),
	string(RoofHip),
	string(RoofFlat),
	string(RoofGambrel),
}

// TrussTypeOptions returns the supported truss geometries.
var TrussTypeOptions = []string{
	string(TrussHowe),
	string(TrussFink),
	string(TrussKingPost),
}

// RebarDiameterOptions returns the standard bar diameters in millimetres.
var RebarDiameterOptions = []int{10, 12, 16, 20, 25, 28, 32, 36}

// VATOptions returns the selectable VAT percentage options.
var VATOptions = []int{0, 5, 12}
