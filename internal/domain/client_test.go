package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClientDecodesNumericAndStringIDs(t *testing.T) {
	var clients []Client
	err := json.Unmarshal([]byte(`[
		{"id": 1, "nome": "Ana", "cpf": "111", "email": "a@x.com", "telefone": "123"},
		{"id": "c-42", "nome": "Bruno", "cpf": "222", "email": "b@x.com", "telefone": "456", "endereco": null}
	]`), &clients)
	require.NoError(t, err)
	require.Len(t, clients, 2)

	require.Equal(t, ID("1"), clients[0].ID)
	require.Equal(t, "Ana", clients[0].Nome)
	require.Empty(t, clients[0].Endereco)
	require.Empty(t, clients[0].DataNascimento)

	require.Equal(t, ID("c-42"), clients[1].ID)
	require.Empty(t, clients[1].Endereco)
}

func TestClientRejectsMalformedID(t *testing.T) {
	var c Client
	err := json.Unmarshal([]byte(`{"id": {"nested": true}}`), &c)
	require.Error(t, err)
}

func TestDraftFromClientNormalizesAbsentOptionals(t *testing.T) {
	c := Client{ID: "7", Nome: "Ana", CPF: "111", Email: "a@x.com", Telefone: "123"}

	d := DraftFromClient(c)

	require.Equal(t, "Ana", d.Nome)
	require.Equal(t, "", d.Endereco)
	require.Equal(t, "", d.DataNascimento)
}

func TestDraftMarshalsOptionalFieldsAsEmptyStrings(t *testing.T) {
	b, err := json.Marshal(ClientDraft{Nome: "Ana"})
	require.NoError(t, err)
	require.JSONEq(t, `{"nome":"Ana","cpf":"","email":"","telefone":"","endereco":"","dataNascimento":""}`, string(b))
}

func TestDraftValidate(t *testing.T) {
	valid := ClientDraft{Nome: "Ana", CPF: "111", Email: "a@x.com", Telefone: "123"}

	tests := []struct {
		name  string
		draft func(d ClientDraft) ClientDraft
		field string
		rule  string
	}{
		{"valid", func(d ClientDraft) ClientDraft { return d }, "", ""},
		{"valid with birth date", func(d ClientDraft) ClientDraft { d.DataNascimento = "1990-02-28"; return d }, "", ""},
		{"missing name", func(d ClientDraft) ClientDraft { d.Nome = "  "; return d }, "nome", "required"},
		{"missing phone", func(d ClientDraft) ClientDraft { d.Telefone = ""; return d }, "telefone", "required"},
		{"bad email", func(d ClientDraft) ClientDraft { d.Email = "not-an-email"; return d }, "email", "email"},
		{"impossible date", func(d ClientDraft) ClientDraft { d.DataNascimento = "1990-02-30"; return d }, "dataNascimento", "datetime"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.draft(valid).Validate()
			if tt.field == "" {
				require.NoError(t, err)
				return
			}
			var fe *FieldError
			require.ErrorAs(t, err, &fe)
			require.Equal(t, tt.field, fe.Field)
			require.Equal(t, tt.rule, fe.Rule)
		})
	}
}
