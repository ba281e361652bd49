package api_test

import "github.com/ricardozepinto10/NextGenAcademy/internal/services/club"

func clubPlayer(firstName string) club.PlayerInput {
	return club.PlayerInput{FirstName: firstName}
}
