package utils

import (
	"math/rand"
	"time"

	"github.com/anjiri1684/peer_tutor/models"
	"gorm.io/gorm"
)

const sessionCodeLength = 6
const letterBytes = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func RandomSessionCode() string {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))

	b := make([]byte, sessionCodeLength)
	for i := range b {
		b[i] = letterBytes[seededRand.Intn(len(letterBytes))]
	}
	return "TUT-" + string(b)
}

func GenerateUniqueSessionCode(tx *gorm.DB) (string, error) {
	for {
		code := RandomSessionCode()

		var session models.Session
		err := tx.Where("code = ?", code).First(&session).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return code, nil
			}
			return "", err
		}
	}
}
