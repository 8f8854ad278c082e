package forms

// Address is the nested endereço object as the backend persists it.
type Address struct {
	Logradouro  string `json:"logradouro"`
	Bairro      string `json:"bairro"`
	Numero      string `json:"numero"`
	Complemento string `json:"complemento"`
	Cidade      string `json:"cidade"`
	UF          string `json:"uf"`
	CEP         string `json:"cep"`
}

// AddressFields lists the flat field names, in form order.
var AddressFields = []string{
	"cep", "logradouro", "bairro", "numero", "complemento", "cidade", "uf",
}

// FlattenAddress merges a nested address into flat form fields. Nested
// values take precedence; a value already present in fs (a legacy flat
// field from the entity) is used only as fallback. Every address field key
// exists afterwards, defaulting to "".
func FlattenAddress(fs FormState, addr *Address) FormState {
	if fs == nil {
		fs = FormState{}
	}
	nested := map[string]string{}
	if addr != nil {
		nested["logradouro"] = addr.Logradouro
		nested["bairro"] = addr.Bairro
		nested["numero"] = addr.Numero
		nested["complemento"] = addr.Complemento
		nested["cidade"] = addr.Cidade
		nested["uf"] = addr.UF
		nested["cep"] = addr.CEP
	}
	for _, field := range AddressFields {
		if v := nested[field]; v != "" {
			fs[field] = v
			continue
		}
		if _, ok := fs[field]; !ok {
			fs[field] = ""
		}
	}
	return fs
}

// UnflattenAddress rebuilds the nested address from flat form fields.
// Total over its input: missing fields become "".
func UnflattenAddress(fs FormState) Address {
	return Address{
		Logradouro:  fs["logradouro"],
		Bairro:      fs["bairro"],
		Numero:      fs["numero"],
		Complemento: fs["complemento"],
		Cidade:      fs["cidade"],
		UF:          fs["uf"],
		CEP:         fs["cep"],
	}
}

// SplitAddress separates a form state into its scalar fields and the
// nested address, for outbound payload shaping.
func SplitAddress(fs FormState) (FormState, Address) {
	addr := UnflattenAddress(fs)
	scalars := FormState{}
	for k, v := range fs {
		if !isAddressField(k) {
			scalars[k] = v
		}
	}
	return scalars, addr
}

func isAddressField(name string) bool {
	for _, f := range AddressFields {
		if f == name {
			return true
		}
	}
	return false
}
