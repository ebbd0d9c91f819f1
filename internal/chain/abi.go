package chain

// Contract ABIs for the two deployed contracts. Only the methods the backend
// consumes are declared; the contracts themselves are external.

const institutionABI = `[
	{"type":"function","name":"addInstitute","stateMutability":"nonpayable","inputs":[
		{"name":"account","type":"address"},
		{"name":"name","type":"string"},
		{"name":"physicalAddress","type":"string"},
		{"name":"acronym","type":"string"},
		{"name":"link","type":"string"},
		{"name":"degrees","type":"string[]"},
		{"name":"departments","type":"string[]"}],"outputs":[]},
	{"type":"function","name":"getInstitute","stateMutability":"view","inputs":[
		{"name":"account","type":"address"}],"outputs":[
		{"name":"name","type":"string"},
		{"name":"physicalAddress","type":"string"},
		{"name":"acronym","type":"string"},
		{"name":"link","type":"string"},
		{"name":"degrees","type":"string[]"},
		{"name":"departments","type":"string[]"}]},
	{"type":"function","name":"checkInstitutePermission","stateMutability":"view","inputs":[
		{"name":"account","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"addDegrees","stateMutability":"nonpayable","inputs":[
		{"name":"names","type":"string[]"}],"outputs":[]},
	{"type":"function","name":"updateDegree","stateMutability":"nonpayable","inputs":[
		{"name":"index","type":"uint256"},{"name":"name","type":"string"}],"outputs":[]},
	{"type":"function","name":"removeDegree","stateMutability":"nonpayable","inputs":[
		{"name":"index","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"clearDegrees","stateMutability":"nonpayable","inputs":[],"outputs":[]},
	{"type":"function","name":"addDepartments","stateMutability":"nonpayable","inputs":[
		{"name":"names","type":"string[]"}],"outputs":[]},
	{"type":"function","name":"updateDepartment","stateMutability":"nonpayable","inputs":[
		{"name":"index","type":"uint256"},{"name":"name","type":"string"}],"outputs":[]},
	{"type":"function","name":"removeDepartment","stateMutability":"nonpayable","inputs":[
		{"name":"index","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"clearDepartments","stateMutability":"nonpayable","inputs":[],"outputs":[]}
]`

const certificationABI = `[
	{"type":"function","name":"generateCertificate","stateMutability":"nonpayable","inputs":[
		{"name":"certId","type":"string"},
		{"name":"name","type":"string"},
		{"name":"studentId","type":"string"},
		{"name":"father","type":"string"},
		{"name":"mother","type":"string"},
		{"name":"degreeIndex","type":"uint256"},
		{"name":"departmentIndex","type":"uint256"},
		{"name":"cgpa","type":"string"},
		{"name":"session","type":"string"},
		{"name":"createdAt","type":"string"},
		{"name":"ipfsHash","type":"string"}],"outputs":[]},
	{"type":"function","name":"verifyCertificate","stateMutability":"view","inputs":[
		{"name":"certId","type":"string"}],"outputs":[
		{"name":"exists","type":"bool"},
		{"name":"valid","type":"bool"},
		{"name":"revoked","type":"bool"},
		{"name":"issuedBy","type":"address"},
		{"name":"ipfsHash","type":"string"},
		{"name":"issueTimestamp","type":"uint256"}]},
	{"type":"function","name":"getCertificateData","stateMutability":"view","inputs":[
		{"name":"certId","type":"string"}],"outputs":[
		{"name":"name","type":"string"},
		{"name":"studentId","type":"string"},
		{"name":"father","type":"string"},
		{"name":"mother","type":"string"},
		{"name":"degreeIndex","type":"uint256"},
		{"name":"departmentIndex","type":"uint256"},
		{"name":"cgpa","type":"string"},
		{"name":"session","type":"string"},
		{"name":"createdAt","type":"string"},
		{"name":"ipfsHash","type":"string"},
		{"name":"issuedBy","type":"address"},
		{"name":"revoked","type":"bool"}]},
	{"type":"function","name":"revokeCertificate","stateMutability":"nonpayable","inputs":[
		{"name":"certId","type":"string"}],"outputs":[]},
	{"type":"function","name":"updateCertificateIpfsHash","stateMutability":"nonpayable","inputs":[
		{"name":"certId","type":"string"},{"name":"newIpfsHash","type":"string"}],"outputs":[]}
]`
