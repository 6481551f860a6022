package cads

import "testing"

func TestActiveOperatorsNesting(t *testing.T) {
	basic, err := ActiveOperators(ComplexityBasic, nil)
	if err != nil {
		t.Fatalf("basic: %v", err)
	}
	intermediate, err := ActiveOperators(ComplexityIntermediate, nil)
	if err != nil {
		t.Fatalf("intermediate: %v", err)
	}
	advanced, err := ActiveOperators(ComplexityAdvanced, nil)
	if err != nil {
		t.Fatalf("advanced: %v", err)
	}

	if len(basic) == 0 {
		t.Fatal("expected at least one basic operator")
	}
	if len(intermediate) <= len(basic) {
		t.Fatalf("intermediate (%d) should be a strict superset of basic (%d)", len(intermediate), len(basic))
	}
	if len(advanced) <= len(intermediate) {
		t.Fatalf("advanced (%d) should be a strict superset of intermediate (%d)", len(advanced), len(intermediate))
	}

	basicSet := make(map[Operator]bool)
	for _, op := range basic {
		basicSet[op] = true
	}
	for op := range basicSet {
		found := false
		for _, iop := range intermediate {
			if iop == op {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("basic operator %v missing from intermediate set", op)
		}
	}
}

func TestActiveOperatorsCustom(t *testing.T) {
	custom := []Operator{OpXor, OpAdd, OpNot}
	ops, err := ActiveOperators(ComplexityBasic, custom)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ops) != 3 {
		t.Fatalf("expected exactly the custom list preserved, got %d", len(ops))
	}
	if ops[0] != OpXor || ops[1] != OpAdd || ops[2] != OpNot {
		t.Fatalf("expected order preserved [XOR, ADD, NOT], got %v", ops)
	}
}

func TestActiveOperatorsCustomRejectsDuplicates(t *testing.T) {
	custom := []Operator{OpXor, OpAdd, OpXor}
	if _, err := ActiveOperators(ComplexityBasic, custom); err == nil {
		t.Fatal("expected error for duplicate operator in custom_operations")
	}
}

func TestActiveOperatorsCustomEmpty(t *testing.T) {
	if _, err := ActiveOperators(ComplexityBasic, []Operator{}); err == nil {
		t.Fatal("expected error for empty custom_operations")
	}
}

func TestParseOperatorName(t *testing.T) {
	op, err := ParseOperatorName("add")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if op != OpAdd {
		t.Fatalf("expected OpAdd, got %v", op)
	}
	if _, err := ParseOperatorName("not_a_real_operator"); err == nil {
		t.Fatal("expected error for unknown operator name")
	}
}

func TestOperatorArityIgnoresUnusedInputs(t *testing.T) {
	// ignored inputs never change output.
	if OpAdd.Class() != Binary {
		t.Fatalf("ADD should be Binary")
	}
	out1 := OpAdd.Apply(3, 4, 999)
	out2 := OpAdd.Apply(3, 4, 12345)
	if out1 != out2 {
		t.Fatalf("Binary op ADD must ignore constant: got %d vs %d", out1, out2)
	}

	if OpIdentity.Class() != Unary {
		t.Fatalf("IDENTITY should be Unary")
	}
	out3 := OpIdentity.Apply(7, 1, 1)
	out4 := OpIdentity.Apply(7, 99, 99)
	if out3 != out4 || out3 != 7 {
		t.Fatalf("Unary op IDENTITY must ignore b and constant: got %d, %d", out3, out4)
	}

	if OpConstAdd.Class() != ConstUsing {
		t.Fatalf("CONST_ADD should be ConstUsing")
	}
	out5 := OpConstAdd.Apply(5, 1, 10)
	out6 := OpConstAdd.Apply(5, 999, 10)
	if out5 != out6 {
		t.Fatalf("ConstUsing op CONST_ADD must ignore b: got %d vs %d", out5, out6)
	}
}
