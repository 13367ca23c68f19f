package store

import "github.com/iliyamo/room-booking/internal/model"

// SeedBookings is the example schedule installed when no saved state is
// available.  It gives a fresh install something to look at.
func SeedBookings() []model.Booking {
	return []model.Booking{
		{ID: "1", GroupName: "Arduino Code", InstructorName: "Eng. Esraa", Day: model.Saturday, TimeFrom: "10:00", TimeTo: "12:00", RoomID: "A", StudentsCount: 8, Status: model.StatusRegular},
		{ID: "2", GroupName: "Web", InstructorName: "Eng. Sarah Mohamed", Day: model.Sunday, TimeFrom: "10:00", TimeTo: "12:00", RoomID: "B", StudentsCount: 10, Status: model.StatusExtra},
		{ID: "3", GroupName: "Spike", InstructorName: "Eng. Fatima Hassan", Day: model.Monday, TimeFrom: "11:00", TimeTo: "13:00", RoomID: "C", StudentsCount: 9, Status: model.StatusRegular},
		{ID: "4", GroupName: "Arduino Block", InstructorName: "Eng. Khalid Youssef", Day: model.Thursday, TimeFrom: "12:30", TimeTo: "14:00", RoomID: "D", StudentsCount: 10, Status: model.StatusRegular},
	}
}
