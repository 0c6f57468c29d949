package output

func Plural(count int, singular string, plural string) string {
	if count != 1 {
		return plural
	}
	return singular
}
