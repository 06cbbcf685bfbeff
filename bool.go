package fmtstr

// formatBool renders b under [[fill]align][width][n<true> <false>].
func formatBool(b bool, spec string) (string, error) {
	as := DefaultAlignSpec()
	i := 0
	if spec != "" && spec[0] != 'n' {
		as, i = ParseAlignSpec(spec, 0)
	}

	yes, no := "true", "false"
	if i < len(spec) && spec[i] == 'n' {
		yes, i = readToken(spec, i+1)
		if i >= len(spec) || spec[i] != ' ' {
			return "", newSpecError("Space expected", spec, i)
		}
		no, _ = readToken(spec, i+1)
	}

	if b {
		return PadToWidth(yes, as, 0, AlignLeft), nil
	}
	return PadToWidth(no, as, 0, AlignLeft), nil
}
