package dto

// RegisterInstituteRequest registers a new institute on the registry.
type RegisterInstituteRequest struct {
	Account         string   `json:"account" binding:"required" example:"0xab5801a7d398351b8be11c439e05c5b3259aec9b"`
	Name            string   `json:"name" binding:"required" example:"Dhaka Institute of Technology"`
	PhysicalAddress string   `json:"physicalAddress" example:"141-142 Love Road, Tejgaon, Dhaka"`
	Acronym         string   `json:"acronym" example:"DIT"`
	Link            string   `json:"link" example:"https://dit.example.edu"`
	Degrees         []string `json:"degrees" binding:"required,min=1" example:"B.Sc,M.Sc"`
	Departments     []string `json:"departments" binding:"required,min=1" example:"CSE,EEE"`
}

// ListNamesRequest appends names to a degree or department list.
type ListNamesRequest struct {
	Names []string `json:"names" binding:"required,min=1" example:"B.Sc,M.Sc"`
}

// RenameEntryRequest renames a single list entry in place.
type RenameEntryRequest struct {
	Name string `json:"name" binding:"required" example:"M.Sc"`
}
