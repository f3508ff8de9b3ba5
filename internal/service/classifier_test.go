package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	c := thaiClassifier()

	cases := []struct {
		legalCategory string
		want          string
	}{
		{"ยาอันตราย", ClassDangerous},
		{"ยาอันตราย (เฉพาะร้านยา)", ClassDangerous},
		{"ยาควบคุมพิเศษ", ClassControlled},
		{"วัตถุออกฤทธิ์ต่อจิตและประสาท", ClassControlled},
		{"ยาเสพติดให้โทษประเภท 3", ClassControlled},
		{"ยาสามัญประจำบ้าน", ""},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, c.Classify(tc.legalCategory), "category %q", tc.legalCategory)
	}
}

func TestClassifyCaseInsensitive(t *testing.T) {
	c := NewRegulatoryClassifier([]string{"Schedule II"}, []string{"schedule iv"})
	assert.Equal(t, ClassDangerous, c.Classify("SCHEDULE ii narcotics"))
	assert.Equal(t, ClassControlled, c.Classify("Schedule IV"))
}

func TestClassifyDangerousWinsOverControlled(t *testing.T) {
	c := NewRegulatoryClassifier([]string{"ยาอันตราย"}, []string{"ยา"})
	assert.Equal(t, ClassDangerous, c.Classify("ยาอันตราย"))
}

func TestClassifierIgnoresEmptyKeywords(t *testing.T) {
	c := NewRegulatoryClassifier([]string{" ", ""}, []string{"ควบคุม"})
	assert.Equal(t, "", c.Classify("anything"))
	assert.Equal(t, ClassControlled, c.Classify("ยาควบคุมพิเศษ"))
}
